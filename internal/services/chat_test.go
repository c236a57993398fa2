package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bloomwell/bloom-backend/internal/clients/openai"
	chatrepo "github.com/bloomwell/bloom-backend/internal/data/repos/chat"
	missionsrepo "github.com/bloomwell/bloom-backend/internal/data/repos/missions"
	wellnessrepo "github.com/bloomwell/bloom-backend/internal/data/repos/wellness"
	"github.com/bloomwell/bloom-backend/internal/domain/chat"
)

type stubModel struct {
	lastSystem  string
	lastHistory []openai.Message
	lastUser    string
	reply       string
	err         error
}

func (s *stubModel) GenerateText(ctx context.Context, system string, history []openai.Message, user string) (string, error) {
	s.lastSystem = system
	s.lastHistory = history
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newChatEngine(t *testing.T, gdb *gorm.DB, model openai.Client) ChatService {
	t.Helper()
	log := testLogger(t)
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	return NewChatService(
		gdb,
		log,
		fixedClock{now: now},
		model,
		chatrepo.NewConversationRepo(gdb, log),
		chatrepo.NewMessageRepo(gdb, log),
		wellnessrepo.NewMoodRepo(gdb, log),
		missionsrepo.NewCompletionRepo(gdb, log),
		missionsrepo.NewProgressionRepo(gdb, log),
	)
}

func TestSendMessageCreatesConversation(t *testing.T) {
	gdb := engineDB(t)
	model := &stubModel{reply: "That sounds like a lot. What helped last time?"}
	svc := newChatEngine(t, gdb, model)
	userID := uuid.New()
	ctx := context.Background()

	long := strings.Repeat("stressful day at work ", 5)
	exchange, err := svc.SendMessage(ctx, userID, nil, long)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if exchange.Reply != model.reply {
		t.Fatalf("reply = %q", exchange.Reply)
	}
	if model.lastUser != strings.TrimSpace(long) {
		t.Fatalf("model got %q", model.lastUser)
	}
	if !strings.Contains(model.lastSystem, "Level 1") {
		t.Fatalf("system prompt missing user context: %q", model.lastSystem)
	}

	conversations, err := svc.ListConversations(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("conversations = %d, want 1", len(conversations))
	}
	conv := conversations[0]
	if len([]rune(conv.Title)) > conversationTitleLength {
		t.Fatalf("title not truncated: %q", conv.Title)
	}
	if conv.MessageCount != 2 {
		t.Fatalf("message count = %d, want 2", conv.MessageCount)
	}

	msgs, err := svc.ConversationMessages(ctx, userID, conv.ID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	if msgs[0].Role != chat.RoleUser || msgs[1].Role != chat.RoleAssistant {
		t.Fatalf("roles = %s, %s", msgs[0].Role, msgs[1].Role)
	}
}

func TestSendMessageReplaysHistory(t *testing.T) {
	gdb := engineDB(t)
	model := &stubModel{reply: "ok"}
	svc := newChatEngine(t, gdb, model)
	userID := uuid.New()
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, userID, nil, "hello")
	if err != nil {
		t.Fatalf("first send: %v", err)
	}
	if len(model.lastHistory) != 0 {
		t.Fatalf("fresh conversation had history: %v", model.lastHistory)
	}

	if _, err := svc.SendMessage(ctx, userID, &first.ConversationID, "still here"); err != nil {
		t.Fatalf("second send: %v", err)
	}
	if len(model.lastHistory) != 2 {
		t.Fatalf("history = %d turns, want 2", len(model.lastHistory))
	}
	if model.lastHistory[0].Role != "user" || model.lastHistory[0].Content != "hello" {
		t.Fatalf("history[0] = %+v", model.lastHistory[0])
	}

	conversations, err := svc.ListConversations(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if conversations[0].MessageCount != 4 {
		t.Fatalf("message count = %d, want 4", conversations[0].MessageCount)
	}
}

func TestSendMessageModelFailureStoresNothing(t *testing.T) {
	gdb := engineDB(t)
	model := &stubModel{err: errors.New("upstream unavailable")}
	svc := newChatEngine(t, gdb, model)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.SendMessage(ctx, userID, nil, "hello"); err == nil {
		t.Fatal("model failure not surfaced")
	}

	// The conversation shell exists but holds no turns.
	conversations, err := svc.ListConversations(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("conversations = %d, want 1", len(conversations))
	}
	if conversations[0].MessageCount != 0 {
		t.Fatalf("message count = %d, want 0", conversations[0].MessageCount)
	}
}

func TestConversationAccessScopedToOwner(t *testing.T) {
	gdb := engineDB(t)
	model := &stubModel{reply: "ok"}
	svc := newChatEngine(t, gdb, model)
	ctx := context.Background()

	exchange, err := svc.SendMessage(ctx, uuid.New(), nil, "private thoughts")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	other := uuid.New()
	if _, err := svc.ConversationMessages(ctx, other, exchange.ConversationID); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("err = %v, want ErrConversationNotFound", err)
	}
	if _, err := svc.SendMessage(ctx, other, &exchange.ConversationID, "hijack"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("err = %v, want ErrConversationNotFound", err)
	}
}
