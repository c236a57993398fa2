package missions

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type CatalogRepo interface {
	// SeedDefinitions inserts any catalog rows that are not already
	// present. Existing rows are left untouched, so concurrent seeders
	// and partially seeded tables both converge on the full catalog.
	SeedDefinitions(dbc dbctx.Context, defs []*types.MissionDefinition) error
	GetByID(dbc dbctx.Context, missionID string) (*types.MissionDefinition, error)
	GetByIDs(dbc dbctx.Context, missionIDs []string) ([]*types.MissionDefinition, error)
	ListAll(dbc dbctx.Context) ([]*types.MissionDefinition, error)
	ListEligible(dbc dbctx.Context, level int) ([]*types.MissionDefinition, error)
}

type catalogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCatalogRepo(db *gorm.DB, baseLog *logger.Logger) CatalogRepo {
	repoLog := baseLog.With("repo", "CatalogRepo")
	return &catalogRepo{db: db, log: repoLog}
}

func (cr *catalogRepo) SeedDefinitions(dbc dbctx.Context, defs []*types.MissionDefinition) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(defs) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&defs).Error
}

func (cr *catalogRepo) GetByID(dbc dbctx.Context, missionID string) (*types.MissionDefinition, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.MissionDefinition
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", missionID).
		First(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (cr *catalogRepo) GetByIDs(dbc dbctx.Context, missionIDs []string) ([]*types.MissionDefinition, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.MissionDefinition

	if len(missionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", missionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (cr *catalogRepo) ListAll(dbc dbctx.Context) ([]*types.MissionDefinition, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.MissionDefinition
	if err := transaction.WithContext(dbc.Ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (cr *catalogRepo) ListEligible(dbc dbctx.Context, level int) ([]*types.MissionDefinition, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.MissionDefinition
	if err := transaction.WithContext(dbc.Ctx).
		Where("min_level <= ?", level).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
