package wellness

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

// ErrGratitudeExists reports that the user already journaled on that day.
var ErrGratitudeExists = errors.New("gratitude entry already exists for this day")

type GratitudeRepo interface {
	// Create inserts the entry; the unique index on (user_id, day) turns a
	// repeat insert into ErrGratitudeExists.
	Create(dbc dbctx.Context, entry *types.GratitudeEntry) (*types.GratitudeEntry, error)
	GetByUserDay(dbc dbctx.Context, userID uuid.UUID, day string) (*types.GratitudeEntry, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.GratitudeEntry, error)
}

type gratitudeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGratitudeRepo(db *gorm.DB, baseLog *logger.Logger) GratitudeRepo {
	repoLog := baseLog.With("repo", "GratitudeRepo")
	return &gratitudeRepo{db: db, log: repoLog}
}

func (gr *gratitudeRepo) Create(dbc dbctx.Context, entry *types.GratitudeEntry) (*types.GratitudeEntry, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = gr.db
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	if err := transaction.WithContext(dbc.Ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGratitudeExists
		}
		return nil, err
	}

	return entry, nil
}

func (gr *gratitudeRepo) GetByUserDay(dbc dbctx.Context, userID uuid.UUID, day string) (*types.GratitudeEntry, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = gr.db
	}

	var result types.GratitudeEntry
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (gr *gratitudeRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.GratitudeEntry, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.GratitudeEntry
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
