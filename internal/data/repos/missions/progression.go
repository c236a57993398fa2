package missions

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/leveling"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type ProgressionRepo interface {
	// AddExperience credits xp to the user's aggregate in a single atomic
	// upsert. Concurrent credits serialize on the row, so no increment is
	// lost; the cached level is recomputed in the same statement.
	AddExperience(dbc dbctx.Context, userID uuid.UUID, xp int) (*types.UserProgression, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.UserProgression, error)
	// GetOrCreate returns the stored aggregate, inserting a zeroed row on
	// first read. Concurrent first reads converge on one row.
	GetOrCreate(dbc dbctx.Context, userID uuid.UUID) (*types.UserProgression, error)
}

type progressionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressionRepo(db *gorm.DB, baseLog *logger.Logger) ProgressionRepo {
	repoLog := baseLog.With("repo", "ProgressionRepo")
	return &progressionRepo{db: db, log: repoLog}
}

func (pr *progressionRepo) AddExperience(dbc dbctx.Context, userID uuid.UUID, xp int) (*types.UserProgression, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	row := &types.UserProgression{
		ID:           uuid.New(),
		UserID:       userID,
		TotalXP:      xp,
		CurrentLevel: leveling.LevelFromExperience(xp),
	}

	if err := transaction.WithContext(dbc.Ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"total_xp": gorm.Expr("user_progression.total_xp + excluded.total_xp"),
					"current_level": gorm.Expr(
						"(user_progression.total_xp + excluded.total_xp) / ? + 1",
						leveling.ExperiencePerLevel,
					),
					"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
				}),
			},
			clause.Returning{},
		).
		Create(row).Error; err != nil {
		return nil, err
	}

	return row, nil
}

func (pr *progressionRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.UserProgression, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.UserProgression
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (pr *progressionRepo) GetOrCreate(dbc dbctx.Context, userID uuid.UUID) (*types.UserProgression, error) {
	result, err := pr.GetByUserID(dbc, userID)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	row := &types.UserProgression{
		ID:           uuid.New(),
		UserID:       userID,
		TotalXP:      0,
		CurrentLevel: 1,
	}
	if err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	return pr.GetByUserID(dbc, userID)
}
