package wellness

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type ReminderRepo interface {
	Create(dbc dbctx.Context, reminder *types.Reminder) (*types.Reminder, error)
	// GetByIDForUser scopes the lookup to the owner so one user cannot
	// touch another's reminders.
	GetByIDForUser(dbc dbctx.Context, reminderID, userID uuid.UUID) (*types.Reminder, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Reminder, error)
	UpdateFields(dbc dbctx.Context, reminderID uuid.UUID, fields map[string]interface{}) error
	SoftDeleteByIDForUser(dbc dbctx.Context, reminderID, userID uuid.UUID) error
}

type reminderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReminderRepo(db *gorm.DB, baseLog *logger.Logger) ReminderRepo {
	repoLog := baseLog.With("repo", "ReminderRepo")
	return &reminderRepo{db: db, log: repoLog}
}

func (rr *reminderRepo) Create(dbc dbctx.Context, reminder *types.Reminder) (*types.Reminder, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}

	if err := transaction.WithContext(dbc.Ctx).Create(reminder).Error; err != nil {
		return nil, err
	}

	return reminder, nil
}

func (rr *reminderRepo) GetByIDForUser(dbc dbctx.Context, reminderID, userID uuid.UUID) (*types.Reminder, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Reminder
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", reminderID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (rr *reminderRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Reminder, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Reminder
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (rr *reminderRepo) UpdateFields(dbc dbctx.Context, reminderID uuid.UUID, fields map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.Reminder{}).
		Where("id = ?", reminderID).
		Updates(fields).Error
}

func (rr *reminderRepo) SoftDeleteByIDForUser(dbc dbctx.Context, reminderID, userID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", reminderID, userID).
		Delete(&types.Reminder{}).Error
}
