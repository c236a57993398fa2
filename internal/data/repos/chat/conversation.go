package chat

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type ConversationRepo interface {
	Create(dbc dbctx.Context, conv *types.ChatConversation) (*types.ChatConversation, error)
	// GetByIDForUser scopes the lookup to the owner.
	GetByIDForUser(dbc dbctx.Context, convID, userID uuid.UUID) (*types.ChatConversation, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.ChatConversation, error)
	// Touch bumps updated_at and adds delta to the message counter.
	Touch(dbc dbctx.Context, convID uuid.UUID, messageDelta int) error
	SoftDeleteByID(dbc dbctx.Context, convID uuid.UUID) error
}

type conversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	repoLog := baseLog.With("repo", "ConversationRepo")
	return &conversationRepo{db: db, log: repoLog}
}

func (cr *conversationRepo) Create(dbc dbctx.Context, conv *types.ChatConversation) (*types.ChatConversation, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}

	if err := transaction.WithContext(dbc.Ctx).Create(conv).Error; err != nil {
		return nil, err
	}

	return conv, nil
}

func (cr *conversationRepo) GetByIDForUser(dbc dbctx.Context, convID, userID uuid.UUID) (*types.ChatConversation, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.ChatConversation
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", convID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (cr *conversationRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.ChatConversation, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.ChatConversation
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (cr *conversationRepo) Touch(dbc dbctx.Context, convID uuid.UUID, messageDelta int) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.ChatConversation{}).
		Where("id = ?", convID).
		Updates(map[string]interface{}{
			"updated_at":    gorm.Expr("CURRENT_TIMESTAMP"),
			"message_count": gorm.Expr("message_count + ?", messageDelta),
		}).Error
}

func (cr *conversationRepo) SoftDeleteByID(dbc dbctx.Context, convID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", convID).
		Delete(&types.ChatConversation{}).Error
}
