package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/bloomwell/bloom-backend/internal/clients/openai"
	chatrepo "github.com/bloomwell/bloom-backend/internal/data/repos/chat"
	missionrepo "github.com/bloomwell/bloom-backend/internal/data/repos/missions"
	wellnessrepo "github.com/bloomwell/bloom-backend/internal/data/repos/wellness"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/domain/chat"
	"github.com/bloomwell/bloom-backend/internal/domain/missions"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/leveling"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

const (
	// chatHistoryLimit bounds how many prior turns are replayed to the model.
	chatHistoryLimit = 20

	conversationTitleLength = 50
	maxChatMessageLength    = 4000
)

const companionSystemPrompt = `You are Bloom, a warm and supportive wellness companion. You listen
without judgment, validate feelings, and gently encourage healthy habits. Keep replies short and
conversational. You are not a therapist and must suggest professional help when someone describes
a crisis or thoughts of self-harm.`

// ChatExchange is the outcome of one user turn.
type ChatExchange struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Reply          string    `json:"reply"`
}

type ChatService interface {
	// SendMessage appends a user turn to the conversation (creating one
	// when convID is nil) and returns the companion's reply.
	SendMessage(ctx context.Context, userID uuid.UUID, convID *uuid.UUID, content string) (*ChatExchange, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*types.ChatConversation, error)
	ConversationMessages(ctx context.Context, userID, convID uuid.UUID) ([]*types.ChatMessage, error)
}

type chatService struct {
	db              *gorm.DB
	log             *logger.Logger
	clock           Clock
	ai              openai.Client
	conversations   chatrepo.ConversationRepo
	messages        chatrepo.MessageRepo
	moodRepo        wellnessrepo.MoodRepo
	completionRepo  missionrepo.CompletionRepo
	progressionRepo missionrepo.ProgressionRepo
}

func NewChatService(
	db *gorm.DB,
	log *logger.Logger,
	clock Clock,
	ai openai.Client,
	conversations chatrepo.ConversationRepo,
	messages chatrepo.MessageRepo,
	moodRepo wellnessrepo.MoodRepo,
	completionRepo missionrepo.CompletionRepo,
	progressionRepo missionrepo.ProgressionRepo,
) ChatService {
	serviceLog := log.With("service", "ChatService")
	return &chatService{
		db:              db,
		log:             serviceLog,
		clock:           clock,
		ai:              ai,
		conversations:   conversations,
		messages:        messages,
		moodRepo:        moodRepo,
		completionRepo:  completionRepo,
		progressionRepo: progressionRepo,
	}
}

// userSnapshot is the wellness context handed to the model so replies
// can reference the user's recent activity.
type userSnapshot struct {
	recentMoods      []*types.MoodEntry
	completionsToday int
	totalXP          int
	level            int
}

func (svc *chatService) gatherSnapshot(ctx context.Context, userID uuid.UUID) (*userSnapshot, error) {
	day := missions.DayOf(svc.clock.Now())
	snapshot := &userSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		moods, err := svc.moodRepo.ListByUser(dbctx.Context{Ctx: gctx}, userID, 7)
		if err != nil {
			return fmt.Errorf("recent moods: %w", err)
		}
		snapshot.recentMoods = moods
		return nil
	})
	g.Go(func() error {
		completions, err := svc.completionRepo.ListByUserDay(dbctx.Context{Ctx: gctx}, userID, day)
		if err != nil {
			return fmt.Errorf("today's completions: %w", err)
		}
		snapshot.completionsToday = len(completions)
		return nil
	})
	g.Go(func() error {
		prog, err := svc.progressionRepo.GetOrCreate(dbctx.Context{Ctx: gctx}, userID)
		if err != nil {
			return fmt.Errorf("progression: %w", err)
		}
		snapshot.totalXP = prog.TotalXP
		snapshot.level = prog.CurrentLevel
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (svc *chatService) systemPrompt(snapshot *userSnapshot) string {
	var b strings.Builder
	b.WriteString(companionSystemPrompt)
	b.WriteString("\n\nWhat you know about this user:\n")

	tier := leveling.TierFor(snapshot.level)
	fmt.Fprintf(&b, "- Level %d (%s), %d XP total.\n", snapshot.level, tier.Name, snapshot.totalXP)
	fmt.Fprintf(&b, "- Completed %d missions today.\n", snapshot.completionsToday)

	if len(snapshot.recentMoods) > 0 {
		b.WriteString("- Recent moods, newest first:")
		for _, m := range snapshot.recentMoods {
			fmt.Fprintf(&b, " %s %d/5 (%s);", m.MoodEmoji, m.MoodLevel, m.Day)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func conversationTitle(content string) string {
	title := strings.TrimSpace(content)
	runes := []rune(title)
	if len(runes) > conversationTitleLength {
		return string(runes[:conversationTitleLength])
	}
	return title
}

func (svc *chatService) SendMessage(ctx context.Context, userID uuid.UUID, convID *uuid.UUID, content string) (*ChatExchange, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidInput(errors.New("message cannot be empty"))
	}
	if len(content) > maxChatMessageLength {
		return nil, invalidInput(errors.New("message too long"))
	}

	dbc := dbctx.Context{Ctx: ctx}

	var conversation *types.ChatConversation
	if convID != nil {
		existing, err := svc.conversations.GetByIDForUser(dbc, *convID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrConversationNotFound
			}
			return nil, fmt.Errorf("load conversation: %w", err)
		}
		conversation = existing
	} else {
		created, err := svc.conversations.Create(dbc, &types.ChatConversation{
			UserID: userID,
			Title:  conversationTitle(content),
		})
		if err != nil {
			return nil, fmt.Errorf("create conversation: %w", err)
		}
		conversation = created
	}

	snapshot, err := svc.gatherSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	priorMessages, err := svc.messages.ListByConversation(dbc, conversation.ID, chatHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	history := make([]openai.Message, 0, len(priorMessages))
	for _, m := range priorMessages {
		history = append(history, openai.Message{Role: string(m.Role), Content: m.Content})
	}

	reply, err := svc.ai.GenerateText(ctx, svc.systemPrompt(snapshot), history, content)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, mErr := svc.messages.Create(txc, &types.ChatMessage{
			ConversationID: conversation.ID,
			Role:           chat.RoleUser,
			Content:        content,
		}); mErr != nil {
			return fmt.Errorf("store user message: %w", mErr)
		}
		if _, mErr := svc.messages.Create(txc, &types.ChatMessage{
			ConversationID: conversation.ID,
			Role:           chat.RoleAssistant,
			Content:        reply,
		}); mErr != nil {
			return fmt.Errorf("store assistant message: %w", mErr)
		}
		return svc.conversations.Touch(txc, conversation.ID, 2)
	})
	if err != nil {
		return nil, err
	}

	return &ChatExchange{ConversationID: conversation.ID, Reply: reply}, nil
}

func (svc *chatService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*types.ChatConversation, error) {
	conversations, err := svc.conversations.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

func (svc *chatService) ConversationMessages(ctx context.Context, userID, convID uuid.UUID) ([]*types.ChatMessage, error) {
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := svc.conversations.GetByIDForUser(dbc, convID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	msgs, err := svc.messages.ListByConversation(dbc, convID, 0)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
