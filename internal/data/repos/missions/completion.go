package missions

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

// ErrAlreadyCompleted reports that a completion row for the same
// (user, mission, day) key already exists.
var ErrAlreadyCompleted = errors.New("mission already completed for this day")

type CompletionRepo interface {
	// Create inserts the completion row. The unique index on
	// (user_id, mission_id, day) is the only authority on duplicates: a
	// conflicting insert returns ErrAlreadyCompleted, never a second row.
	Create(dbc dbctx.Context, completion *types.MissionCompletion) (*types.MissionCompletion, error)
	GetByUserMissionDay(dbc dbctx.Context, userID uuid.UUID, missionID, day string) (*types.MissionCompletion, error)
	ListByUserDay(dbc dbctx.Context, userID uuid.UUID, day string) ([]*types.MissionCompletion, error)
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type completionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompletionRepo(db *gorm.DB, baseLog *logger.Logger) CompletionRepo {
	repoLog := baseLog.With("repo", "CompletionRepo")
	return &completionRepo{db: db, log: repoLog}
}

func (cr *completionRepo) Create(dbc dbctx.Context, completion *types.MissionCompletion) (*types.MissionCompletion, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	if completion.ID == uuid.Nil {
		completion.ID = uuid.New()
	}

	if err := transaction.WithContext(dbc.Ctx).Create(completion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCompleted
		}
		return nil, err
	}

	return completion, nil
}

func (cr *completionRepo) GetByUserMissionDay(dbc dbctx.Context, userID uuid.UUID, missionID, day string) (*types.MissionCompletion, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.MissionCompletion
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND mission_id = ? AND day = ?", userID, missionID, day).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (cr *completionRepo) ListByUserDay(dbc dbctx.Context, userID uuid.UUID, day string) ([]*types.MissionCompletion, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.MissionCompletion
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Order("completed_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (cr *completionRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.MissionCompletion{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
