package chat

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type MessageRepo interface {
	Create(dbc dbctx.Context, msg *types.ChatMessage) (*types.ChatMessage, error)
	ListByConversation(dbc dbctx.Context, convID uuid.UUID, limit int) ([]*types.ChatMessage, error)
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	repoLog := baseLog.With("repo", "MessageRepo")
	return &messageRepo{db: db, log: repoLog}
}

func (mr *messageRepo) Create(dbc dbctx.Context, msg *types.ChatMessage) (*types.ChatMessage, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	if err := transaction.WithContext(dbc.Ctx).Create(msg).Error; err != nil {
		return nil, err
	}

	return msg, nil
}

func (mr *messageRepo) ListByConversation(dbc dbctx.Context, convID uuid.UUID, limit int) ([]*types.ChatMessage, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	// With a limit the window is taken from the tail of the conversation,
	// then flipped back into chronological order.
	var results []*types.ChatMessage
	q := transaction.WithContext(dbc.Ctx).Where("conversation_id = ?", convID)
	if limit > 0 {
		q = q.Order("created_at DESC").Limit(limit)
	} else {
		q = q.Order("created_at ASC")
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	if limit > 0 {
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
	}

	return results, nil
}
