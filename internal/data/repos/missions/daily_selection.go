package missions

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type DailySelectionRepo interface {
	// CreateIfAbsent commits a selection for the (user, day) pair unless
	// one already exists. It returns the row that won, which under a
	// concurrent race may be another writer's, and whether this call
	// created it.
	CreateIfAbsent(dbc dbctx.Context, sel *types.DailySelection) (*types.DailySelection, bool, error)
	GetByUserDay(dbc dbctx.Context, userID uuid.UUID, day string) (*types.DailySelection, error)
}

type dailySelectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailySelectionRepo(db *gorm.DB, baseLog *logger.Logger) DailySelectionRepo {
	repoLog := baseLog.With("repo", "DailySelectionRepo")
	return &dailySelectionRepo{db: db, log: repoLog}
}

func (dsr *dailySelectionRepo) CreateIfAbsent(dbc dbctx.Context, sel *types.DailySelection) (*types.DailySelection, bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dsr.db
	}

	if sel.ID == uuid.Nil {
		sel.ID = uuid.New()
	}

	res := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoNothing: true,
		}).
		Create(sel)
	if res.Error != nil {
		return nil, false, res.Error
	}

	if res.RowsAffected > 0 {
		return sel, true, nil
	}

	// Lost the race: re-read the winning row.
	winner, err := dsr.GetByUserDay(dbc, sel.UserID, sel.Day)
	if err != nil {
		return nil, false, err
	}
	return winner, false, nil
}

func (dsr *dailySelectionRepo) GetByUserDay(dbc dbctx.Context, userID uuid.UUID, day string) (*types.DailySelection, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dsr.db
	}

	var result types.DailySelection
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
