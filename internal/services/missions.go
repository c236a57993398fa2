package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"

	missionsrepo "github.com/bloomwell/bloom-backend/internal/data/repos/missions"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/domain/missions"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/leveling"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

// selectionSize is how many missions a user gets per day.
const selectionSize = 3

// MissionStatus is one mission in today's set plus its completion state.
type MissionStatus struct {
	*types.MissionDefinition
	Completed bool `json:"completed"`
}

type TodaysMissions struct {
	Day          string           `json:"date"`
	Missions     []*MissionStatus `json:"missions"`
	TotalXPToday int              `json:"total_xp_today"`
	PossibleXP   int              `json:"possible_xp"`
	UserLevel    int              `json:"user_level"`
}

type CompletionResult struct {
	MissionID        string `json:"mission_id"`
	MissionTitle     string `json:"mission_title"`
	XPEarned         int    `json:"xp_earned"`
	TotalXPToday     int    `json:"total_xp_today"`
	AlreadyCompleted bool   `json:"already_completed"`
	TotalXP          int    `json:"total_xp"`
	CurrentLevel     int    `json:"current_level"`
}

type UserStats struct {
	TotalXP          int    `json:"total_xp"`
	CurrentLevel     int    `json:"current_level"`
	XPForNextLevel   int    `json:"xp_for_next_level"`
	XPProgress       int    `json:"xp_progress"`
	LevelName        string `json:"level_name"`
	LevelEmoji       string `json:"level_emoji"`
	LevelDescription string `json:"level_description"`
	LevelTier        string `json:"level_tier"`
}

type MissionService interface {
	// TodaysMissions returns the committed set for the user's current UTC
	// day, creating it on first call. The set never changes within a day.
	TodaysMissions(ctx context.Context, userID uuid.UUID) (*TodaysMissions, error)
	// CompleteMission records a completion exactly once per (user,
	// mission, day); repeats are idempotent successes flagged
	// AlreadyCompleted.
	CompleteMission(ctx context.Context, userID uuid.UUID, missionID string) (*CompletionResult, error)
	Stats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
}

type missionService struct {
	db              *gorm.DB
	log             *logger.Logger
	clock           Clock
	catalogService  CatalogService
	selectionRepo   missionsrepo.DailySelectionRepo
	completionRepo  missionsrepo.CompletionRepo
	progressionRepo missionsrepo.ProgressionRepo
}

func NewMissionService(
	db *gorm.DB,
	log *logger.Logger,
	clock Clock,
	catalogService CatalogService,
	selectionRepo missionsrepo.DailySelectionRepo,
	completionRepo missionsrepo.CompletionRepo,
	progressionRepo missionsrepo.ProgressionRepo,
) MissionService {
	serviceLog := log.With("service", "MissionService")
	return &missionService{
		db:              db,
		log:             serviceLog,
		clock:           clock,
		catalogService:  catalogService,
		selectionRepo:   selectionRepo,
		completionRepo:  completionRepo,
		progressionRepo: progressionRepo,
	}
}

func (ms *missionService) TodaysMissions(ctx context.Context, userID uuid.UUID) (*TodaysMissions, error) {
	day := missions.DayOf(ms.clock.Now())
	dbc := dbctx.Context{Ctx: ctx}

	prog, err := ms.progressionRepo.GetOrCreate(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load progression: %w", err)
	}
	level := prog.CurrentLevel

	sel, err := ms.selectionRepo.GetByUserDay(dbc, userID, day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load daily selection: %w", err)
		}
		sel, err = ms.commitSelection(ctx, userID, day, level)
		if err != nil {
			return nil, err
		}
	}

	ids, err := sel.DecodeMissionIDs()
	if err != nil {
		return nil, fmt.Errorf("decode selection: %w", err)
	}
	defs, err := ms.catalogService.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	completions, err := ms.completionRepo.ListByUserDay(dbc, userID, day)
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}
	completed := make(map[string]bool, len(completions))
	totalXPToday := 0
	for _, c := range completions {
		completed[c.MissionID] = true
		totalXPToday += c.XPEarned
	}

	result := &TodaysMissions{
		Day:          day,
		Missions:     make([]*MissionStatus, 0, len(defs)),
		TotalXPToday: totalXPToday,
		UserLevel:    level,
	}
	for _, def := range defs {
		result.PossibleXP += def.XPReward
		result.Missions = append(result.Missions, &MissionStatus{
			MissionDefinition: def,
			Completed:         completed[def.ID],
		})
	}
	return result, nil
}

// commitSelection draws a category-diverse random set and commits it. If
// another request commits first, the winner's set is returned instead.
func (ms *missionService) commitSelection(ctx context.Context, userID uuid.UUID, day string, level int) (*types.DailySelection, error) {
	eligible, err := ms.catalogService.ListEligible(ctx, level)
	if err != nil {
		return nil, err
	}
	if len(eligible) < selectionSize {
		return nil, ErrInsufficientCatalog
	}

	picked := drawDiverse(eligible, selectionSize)
	ids := make([]string, 0, len(picked))
	for _, def := range picked {
		ids = append(ids, def.ID)
	}
	encoded, err := missions.EncodeMissionIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("encode selection: %w", err)
	}

	sel, created, err := ms.selectionRepo.CreateIfAbsent(dbctx.Context{Ctx: ctx}, &types.DailySelection{
		UserID:     userID,
		Day:        day,
		MissionIDs: encoded,
	})
	if err != nil {
		return nil, fmt.Errorf("commit daily selection: %w", err)
	}
	if created {
		ms.log.Debug("daily selection committed", "user_id", userID.String(), "day", day, "missions", ids)
	}
	return sel, nil
}

// drawDiverse picks n missions preferring one per category: categories
// are visited in random order taking one random mission each, then any
// shortfall is filled from the leftover pool.
func drawDiverse(pool []*types.MissionDefinition, n int) []*types.MissionDefinition {
	byCategory := map[missions.Category][]*types.MissionDefinition{}
	var categories []missions.Category
	for _, def := range pool {
		if _, ok := byCategory[def.Category]; !ok {
			categories = append(categories, def.Category)
		}
		byCategory[def.Category] = append(byCategory[def.Category], def)
	}
	rand.Shuffle(len(categories), func(i, j int) {
		categories[i], categories[j] = categories[j], categories[i]
	})

	picked := make([]*types.MissionDefinition, 0, n)
	taken := map[string]bool{}
	for _, cat := range categories {
		if len(picked) == n {
			break
		}
		options := byCategory[cat]
		def := options[rand.Intn(len(options))]
		picked = append(picked, def)
		taken[def.ID] = true
	}

	// Fewer categories than n: top up from whatever remains.
	for len(picked) < n {
		var remaining []*types.MissionDefinition
		for _, def := range pool {
			if !taken[def.ID] {
				remaining = append(remaining, def)
			}
		}
		def := remaining[rand.Intn(len(remaining))]
		picked = append(picked, def)
		taken[def.ID] = true
	}
	return picked
}

func (ms *missionService) CompleteMission(ctx context.Context, userID uuid.UUID, missionID string) (*CompletionResult, error) {
	def, err := ms.catalogService.Get(ctx, missionID)
	if err != nil {
		return nil, err
	}

	now := ms.clock.Now()
	day := missions.DayOf(now)

	var prog *types.UserProgression
	txErr := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := ms.completionRepo.Create(dbc, &types.MissionCompletion{
			UserID:      userID,
			MissionID:   def.ID,
			Day:         day,
			XPEarned:    def.XPReward,
			CompletedAt: now.UTC(),
		}); err != nil {
			return err
		}
		p, err := ms.progressionRepo.AddExperience(dbc, userID, def.XPReward)
		if err != nil {
			return fmt.Errorf("credit experience: %w", err)
		}
		prog = p
		return nil
	})

	alreadyCompleted := false
	switch {
	case txErr == nil:
	case errors.Is(txErr, missionsrepo.ErrAlreadyCompleted):
		alreadyCompleted = true
		prog, err = ms.progressionRepo.GetOrCreate(dbctx.Context{Ctx: ctx}, userID)
		if err != nil {
			return nil, fmt.Errorf("load progression: %w", err)
		}
	default:
		return nil, txErr
	}

	completions, err := ms.completionRepo.ListByUserDay(dbctx.Context{Ctx: ctx}, userID, day)
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}
	totalXPToday := 0
	for _, c := range completions {
		totalXPToday += c.XPEarned
	}

	xpEarned := def.XPReward
	if alreadyCompleted {
		xpEarned = 0
	}
	return &CompletionResult{
		MissionID:        def.ID,
		MissionTitle:     def.Title,
		XPEarned:         xpEarned,
		TotalXPToday:     totalXPToday,
		AlreadyCompleted: alreadyCompleted,
		TotalXP:          prog.TotalXP,
		CurrentLevel:     prog.CurrentLevel,
	}, nil
}

func (ms *missionService) Stats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	prog, err := ms.progressionRepo.GetOrCreate(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("load progression: %w", err)
	}

	level := leveling.LevelFromExperience(prog.TotalXP)
	tier := leveling.TierFor(level)
	return &UserStats{
		TotalXP:          prog.TotalXP,
		CurrentLevel:     level,
		XPForNextLevel:   leveling.ExperienceCeilingForLevel(level) - prog.TotalXP,
		XPProgress:       leveling.ProgressWithinLevel(prog.TotalXP),
		LevelName:        tier.Name,
		LevelEmoji:       tier.Emoji,
		LevelDescription: tier.Description,
		LevelTier:        tier.Key,
	}, nil
}
