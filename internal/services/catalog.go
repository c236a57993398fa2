package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bloomwell/bloom-backend/internal/catalog"
	missionsrepo "github.com/bloomwell/bloom-backend/internal/data/repos/missions"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

// CatalogService seeds the mission catalog and serves reads from an
// in-process snapshot. Definitions are immutable after seeding, so the
// snapshot never invalidates.
type CatalogService interface {
	// Seed inserts missing definitions and loads the snapshot. Safe to
	// call from concurrent cold starts.
	Seed(ctx context.Context) error
	Get(ctx context.Context, missionID string) (*types.MissionDefinition, error)
	GetByIDs(ctx context.Context, missionIDs []string) ([]*types.MissionDefinition, error)
	ListEligible(ctx context.Context, level int) ([]*types.MissionDefinition, error)
}

type catalogService struct {
	log         *logger.Logger
	catalogRepo missionsrepo.CatalogRepo

	mu   sync.RWMutex
	byID map[string]*types.MissionDefinition
}

func NewCatalogService(log *logger.Logger, catalogRepo missionsrepo.CatalogRepo) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		log:         serviceLog,
		catalogRepo: catalogRepo,
		byID:        map[string]*types.MissionDefinition{},
	}
}

func (cs *catalogService) Seed(ctx context.Context) error {
	defs, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load embedded catalog: %w", err)
	}

	dbc := dbctx.Context{Ctx: ctx}
	if err := cs.catalogRepo.SeedDefinitions(dbc, defs); err != nil {
		return fmt.Errorf("seed mission definitions: %w", err)
	}

	// Read back so the snapshot reflects what the database holds, which
	// may include rows from an earlier deploy.
	all, err := cs.catalogRepo.ListAll(dbc)
	if err != nil {
		return fmt.Errorf("load mission definitions: %w", err)
	}

	byID := make(map[string]*types.MissionDefinition, len(all))
	for _, def := range all {
		byID[def.ID] = def
	}

	cs.mu.Lock()
	cs.byID = byID
	cs.mu.Unlock()

	cs.log.Info("mission catalog ready", "definitions", len(all))
	return nil
}

func (cs *catalogService) Get(ctx context.Context, missionID string) (*types.MissionDefinition, error) {
	cs.mu.RLock()
	def, ok := cs.byID[missionID]
	cs.mu.RUnlock()
	if ok {
		return def, nil
	}
	return nil, ErrMissionNotFound
}

func (cs *catalogService) GetByIDs(ctx context.Context, missionIDs []string) ([]*types.MissionDefinition, error) {
	out := make([]*types.MissionDefinition, 0, len(missionIDs))
	for _, id := range missionIDs {
		def, err := cs.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

func (cs *catalogService) ListEligible(ctx context.Context, level int) ([]*types.MissionDefinition, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	var out []*types.MissionDefinition
	for _, def := range cs.byID {
		if def.MinLevel <= level {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
