package wellness

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type MoodRepo interface {
	Create(dbc dbctx.Context, entry *types.MoodEntry) (*types.MoodEntry, error)
	GetByUserDay(dbc dbctx.Context, userID uuid.UUID, day string) (*types.MoodEntry, error)
	UpdateFields(dbc dbctx.Context, entryID uuid.UUID, fields map[string]interface{}) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.MoodEntry, error)
	ListByUserSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.MoodEntry, error)
}

type moodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodRepo(db *gorm.DB, baseLog *logger.Logger) MoodRepo {
	repoLog := baseLog.With("repo", "MoodRepo")
	return &moodRepo{db: db, log: repoLog}
}

func (mr *moodRepo) Create(dbc dbctx.Context, entry *types.MoodEntry) (*types.MoodEntry, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	if err := transaction.WithContext(dbc.Ctx).Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

func (mr *moodRepo) GetByUserDay(dbc dbctx.Context, userID uuid.UUID, day string) (*types.MoodEntry, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	var result types.MoodEntry
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (mr *moodRepo) UpdateFields(dbc dbctx.Context, entryID uuid.UUID, fields map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.MoodEntry{}).
		Where("id = ?", entryID).
		Updates(fields).Error
}

func (mr *moodRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.MoodEntry, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.MoodEntry
	q := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("day DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (mr *moodRepo) ListByUserSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.MoodEntry, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.MoodEntry
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND day >= ?", userID, since.UTC().Format("2006-01-02")).
		Order("day ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
