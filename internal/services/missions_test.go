package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bloomwell/bloom-backend/internal/data/db"
	missionsrepo "github.com/bloomwell/bloom-backend/internal/data/repos/missions"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/domain/missions"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// engineDB opens a per-test in-memory sqlite database. The shared cache
// keeps every pooled connection on the same store.
func engineDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func def(id string, category missions.Category, minLevel, xp int) *types.MissionDefinition {
	return &types.MissionDefinition{
		ID:         id,
		Title:      id,
		Category:   category,
		Difficulty: missions.DifficultyEasy,
		XPReward:   xp,
		MinLevel:   minLevel,
	}
}

// snapshotCatalog seeds the given definitions and returns a catalog
// service whose snapshot holds exactly those definitions.
func snapshotCatalog(t *testing.T, gdb *gorm.DB, log *logger.Logger, defs []*types.MissionDefinition) CatalogService {
	t.Helper()

	repo := missionsrepo.NewCatalogRepo(gdb, log)
	if err := repo.SeedDefinitions(dbctx.Context{Ctx: context.Background()}, defs); err != nil {
		t.Fatalf("seed definitions: %v", err)
	}

	byID := make(map[string]*types.MissionDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	return &catalogService{log: log.With("service", "CatalogService"), catalogRepo: repo, byID: byID}
}

func newEngine(t *testing.T, gdb *gorm.DB, defs []*types.MissionDefinition, now time.Time) MissionService {
	t.Helper()

	log := testLogger(t)
	return NewMissionService(
		gdb,
		log,
		fixedClock{now: now},
		snapshotCatalog(t, gdb, log, defs),
		missionsrepo.NewDailySelectionRepo(gdb, log),
		missionsrepo.NewCompletionRepo(gdb, log),
		missionsrepo.NewProgressionRepo(gdb, log),
	)
}

func diverseDefs() []*types.MissionDefinition {
	return []*types.MissionDefinition{
		def("breath_break", missions.CategoryMindfulness, 1, 10),
		def("body_scan", missions.CategoryMindfulness, 1, 15),
		def("walk_block", missions.CategoryMovement, 1, 10),
		def("stretch_morning", missions.CategoryMovement, 1, 10),
		def("thank_someone", missions.CategoryGratitude, 1, 10),
		def("sit_outside", missions.CategoryNature, 1, 5),
	}
}

func TestTodaysMissionsStableWithinDay(t *testing.T) {
	gdb := engineDB(t)
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	engine := newEngine(t, gdb, diverseDefs(), now)
	userID := uuid.New()
	ctx := context.Background()

	first, err := engine.TodaysMissions(ctx, userID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if len(first.Missions) != selectionSize {
		t.Fatalf("got %d missions, want %d", len(first.Missions), selectionSize)
	}
	if first.Day != "2026-03-14" {
		t.Fatalf("day = %q", first.Day)
	}
	if first.UserLevel != 1 {
		t.Fatalf("user level = %d, want 1", first.UserLevel)
	}

	// Every repeat within the same day returns the committed set even
	// though the draw itself is random.
	for i := 0; i < 10; i++ {
		again, err := engine.TodaysMissions(ctx, userID)
		if err != nil {
			t.Fatalf("repeat call: %v", err)
		}
		for j, m := range again.Missions {
			if m.ID != first.Missions[j].ID {
				t.Fatalf("selection changed on repeat %d: %s != %s", i, m.ID, first.Missions[j].ID)
			}
		}
	}
}

func TestTodaysMissionsCategoryDiversity(t *testing.T) {
	gdb := engineDB(t)
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	engine := newEngine(t, gdb, diverseDefs(), now)

	// Four categories are available, so three picks must land in three
	// distinct ones. Fresh user per iteration to re-roll the draw.
	for i := 0; i < 20; i++ {
		today, err := engine.TodaysMissions(context.Background(), uuid.New())
		if err != nil {
			t.Fatalf("todays missions: %v", err)
		}
		seen := map[missions.Category]bool{}
		for _, m := range today.Missions {
			if seen[m.Category] {
				t.Fatalf("duplicate category %s in %v", m.Category, today.Missions)
			}
			seen[m.Category] = true
		}
	}
}

func TestTodaysMissionsLevelGating(t *testing.T) {
	gdb := engineDB(t)
	defs := []*types.MissionDefinition{
		def("easy_a", missions.CategoryMindfulness, 1, 10),
		def("easy_b", missions.CategoryMovement, 1, 10),
		def("easy_c", missions.CategoryGratitude, 1, 10),
		def("locked_a", missions.CategorySocial, 5, 30),
		def("locked_b", missions.CategoryNature, 9, 30),
	}
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	engine := newEngine(t, gdb, defs, now)

	today, err := engine.TodaysMissions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("todays missions: %v", err)
	}
	for _, m := range today.Missions {
		if m.MinLevel > 1 {
			t.Fatalf("mission %s requires level %d but user is level 1", m.ID, m.MinLevel)
		}
	}
}

func TestTodaysMissionsInsufficientCatalog(t *testing.T) {
	gdb := engineDB(t)
	defs := []*types.MissionDefinition{
		def("only_a", missions.CategoryMindfulness, 1, 10),
		def("only_b", missions.CategoryMovement, 1, 10),
		def("locked", missions.CategorySocial, 5, 30),
	}
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	engine := newEngine(t, gdb, defs, now)

	_, err := engine.TodaysMissions(context.Background(), uuid.New())
	if !errors.Is(err, ErrInsufficientCatalog) {
		t.Fatalf("err = %v, want ErrInsufficientCatalog", err)
	}
}

func TestCompleteMissionExactlyOnce(t *testing.T) {
	gdb := engineDB(t)
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	engine := newEngine(t, gdb, diverseDefs(), now)
	userID := uuid.New()
	ctx := context.Background()

	today, err := engine.TodaysMissions(ctx, userID)
	if err != nil {
		t.Fatalf("todays missions: %v", err)
	}
	target := today.Missions[0]

	first, err := engine.CompleteMission(ctx, userID, target.ID)
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if first.AlreadyCompleted {
		t.Fatal("first completion flagged as repeat")
	}
	if first.XPEarned != target.XPReward {
		t.Fatalf("xp earned = %d, want %d", first.XPEarned, target.XPReward)
	}
	if first.TotalXP != target.XPReward {
		t.Fatalf("total xp = %d, want %d", first.TotalXP, target.XPReward)
	}

	second, err := engine.CompleteMission(ctx, userID, target.ID)
	if err != nil {
		t.Fatalf("repeat completion: %v", err)
	}
	if !second.AlreadyCompleted {
		t.Fatal("repeat completion not flagged")
	}
	if second.XPEarned != 0 {
		t.Fatalf("repeat xp earned = %d, want 0", second.XPEarned)
	}
	if second.TotalXP != target.XPReward {
		t.Fatalf("repeat credited xp: total = %d, want %d", second.TotalXP, target.XPReward)
	}
	if second.TotalXPToday != target.XPReward {
		t.Fatalf("total xp today = %d, want %d", second.TotalXPToday, target.XPReward)
	}
}

func TestCompleteMissionUnknownID(t *testing.T) {
	gdb := engineDB(t)
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	engine := newEngine(t, gdb, diverseDefs(), now)

	_, err := engine.CompleteMission(context.Background(), uuid.New(), "no_such_mission")
	if !errors.Is(err, ErrMissionNotFound) {
		t.Fatalf("err = %v, want ErrMissionNotFound", err)
	}
}

func TestCompleteMissionXPAccounting(t *testing.T) {
	gdb := engineDB(t)
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	engine := newEngine(t, gdb, diverseDefs(), now)
	userID := uuid.New()
	ctx := context.Background()

	today, err := engine.TodaysMissions(ctx, userID)
	if err != nil {
		t.Fatalf("todays missions: %v", err)
	}

	wantTotal := 0
	for _, m := range today.Missions {
		res, err := engine.CompleteMission(ctx, userID, m.ID)
		if err != nil {
			t.Fatalf("complete %s: %v", m.ID, err)
		}
		wantTotal += m.XPReward
		if res.TotalXP != wantTotal {
			t.Fatalf("after %s: total xp = %d, want %d", m.ID, res.TotalXP, wantTotal)
		}
		if res.TotalXPToday != wantTotal {
			t.Fatalf("after %s: total xp today = %d, want %d", m.ID, res.TotalXPToday, wantTotal)
		}
	}

	refreshed, err := engine.TodaysMissions(ctx, userID)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.TotalXPToday != wantTotal {
		t.Fatalf("refreshed total xp today = %d, want %d", refreshed.TotalXPToday, wantTotal)
	}
	for _, m := range refreshed.Missions {
		if !m.Completed {
			t.Fatalf("mission %s not marked completed", m.ID)
		}
	}
}

func TestStatsBootstrapAndLeveling(t *testing.T) {
	gdb := engineDB(t)
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	defs := diverseDefs()
	defs = append(defs, def("big_effort", missions.CategorySelfcare, 1, 120))
	engine := newEngine(t, gdb, defs, now)
	userID := uuid.New()
	ctx := context.Background()

	// First read bootstraps a zeroed row.
	stats, err := engine.Stats(ctx, userID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalXP != 0 || stats.CurrentLevel != 1 {
		t.Fatalf("bootstrap stats = %+v", stats)
	}
	if stats.XPForNextLevel != 100 {
		t.Fatalf("xp for next level = %d, want 100", stats.XPForNextLevel)
	}
	if stats.LevelTier != "beginner" {
		t.Fatalf("tier = %q, want beginner", stats.LevelTier)
	}

	if _, err := engine.CompleteMission(ctx, userID, "big_effort"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stats, err = engine.Stats(ctx, userID)
	if err != nil {
		t.Fatalf("stats after xp: %v", err)
	}
	if stats.TotalXP != 120 {
		t.Fatalf("total xp = %d, want 120", stats.TotalXP)
	}
	if stats.CurrentLevel != 2 {
		t.Fatalf("level = %d, want 2", stats.CurrentLevel)
	}
	if stats.XPProgress != 20 {
		t.Fatalf("progress = %d, want 20", stats.XPProgress)
	}
	if stats.XPForNextLevel != 80 {
		t.Fatalf("xp for next level = %d, want 80", stats.XPForNextLevel)
	}
}

func TestSelectionRollsOverAtMidnight(t *testing.T) {
	gdb := engineDB(t)
	userID := uuid.New()
	ctx := context.Background()

	day1 := newEngine(t, gdb, diverseDefs(), time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC))
	first, err := day1.TodaysMissions(ctx, userID)
	if err != nil {
		t.Fatalf("day one: %v", err)
	}

	day2 := newEngine(t, gdb, diverseDefs(), time.Date(2026, 3, 15, 0, 10, 0, 0, time.UTC))
	second, err := day2.TodaysMissions(ctx, userID)
	if err != nil {
		t.Fatalf("day two: %v", err)
	}

	if first.Day == second.Day {
		t.Fatalf("day did not roll over: %s", first.Day)
	}
	if second.TotalXPToday != 0 {
		t.Fatalf("xp today carried over: %d", second.TotalXPToday)
	}
}
