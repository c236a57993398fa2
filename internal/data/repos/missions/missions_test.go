package missions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloomwell/bloom-backend/internal/data/repos/testutil"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/domain/missions"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
)

func TestCatalogRepoSeedIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCatalogRepo(db, testutil.Logger(t))

	defs := []*types.MissionDefinition{
		{ID: "seed-a", Title: "A", Description: "d", Category: missions.CategoryMindfulness, Difficulty: missions.DifficultyEasy, XPReward: 10, MinLevel: 1, EstimatedMinutes: 5},
		{ID: "seed-b", Title: "B", Description: "d", Category: missions.CategoryMovement, Difficulty: missions.DifficultyMedium, XPReward: 20, MinLevel: 2, EstimatedMinutes: 10},
	}
	if err := repo.SeedDefinitions(dbc, defs); err != nil {
		t.Fatalf("SeedDefinitions: %v", err)
	}

	// Re-seeding with an overlapping set must not error and must not
	// overwrite existing rows.
	again := []*types.MissionDefinition{
		{ID: "seed-a", Title: "A changed", Description: "d", Category: missions.CategoryMindfulness, Difficulty: missions.DifficultyEasy, XPReward: 99, MinLevel: 1, EstimatedMinutes: 5},
		{ID: "seed-c", Title: "C", Description: "d", Category: missions.CategoryNature, Difficulty: missions.DifficultyEasy, XPReward: 15, MinLevel: 1, EstimatedMinutes: 5},
	}
	if err := repo.SeedDefinitions(dbc, again); err != nil {
		t.Fatalf("SeedDefinitions again: %v", err)
	}

	got, err := repo.GetByID(dbc, "seed-a")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "A" || got.XPReward != 10 {
		t.Fatalf("seed-a was overwritten: title=%q xp=%d", got.Title, got.XPReward)
	}

	all, err := repo.ListAll(dbc)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) < 3 {
		t.Fatalf("ListAll: want at least 3 rows, got %d", len(all))
	}

	eligible, err := repo.ListEligible(dbc, 1)
	if err != nil {
		t.Fatalf("ListEligible: %v", err)
	}
	for _, def := range eligible {
		if def.MinLevel > 1 {
			t.Fatalf("ListEligible(1) returned %q with min_level=%d", def.ID, def.MinLevel)
		}
	}
}

func TestDailySelectionRepoCreateIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewDailySelectionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "selection@test.dev")
	day := "2026-08-26"

	first, err := missions.EncodeMissionIDs([]string{"m1", "m2", "m3"})
	if err != nil {
		t.Fatalf("EncodeMissionIDs: %v", err)
	}
	sel, created, err := repo.CreateIfAbsent(dbc, &types.DailySelection{UserID: u.ID, Day: day, MissionIDs: first})
	if err != nil || !created {
		t.Fatalf("CreateIfAbsent first: created=%v err=%v", created, err)
	}

	// A second commit for the same pair must return the original row.
	second, err := missions.EncodeMissionIDs([]string{"x1", "x2", "x3"})
	if err != nil {
		t.Fatalf("EncodeMissionIDs: %v", err)
	}
	winner, created, err := repo.CreateIfAbsent(dbc, &types.DailySelection{UserID: u.ID, Day: day, MissionIDs: second})
	if err != nil {
		t.Fatalf("CreateIfAbsent second: %v", err)
	}
	if created {
		t.Fatalf("second CreateIfAbsent claimed to create")
	}
	if winner.ID != sel.ID {
		t.Fatalf("winner id = %s, want %s", winner.ID, sel.ID)
	}
	ids, err := winner.DecodeMissionIDs()
	if err != nil {
		t.Fatalf("DecodeMissionIDs: %v", err)
	}
	if len(ids) != 3 || ids[0] != "m1" {
		t.Fatalf("winner mission ids = %v, want original set", ids)
	}

	// Different day is a fresh pair.
	if _, created, err := repo.CreateIfAbsent(dbc, &types.DailySelection{UserID: u.ID, Day: "2026-08-27", MissionIDs: first}); err != nil || !created {
		t.Fatalf("CreateIfAbsent next day: created=%v err=%v", created, err)
	}
}

func TestCompletionRepoDuplicate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCompletionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "completion@test.dev")
	testutil.SeedMissionDefinition(t, ctx, tx, "comp-m1", missions.CategoryGratitude, 1, 15)
	day := "2026-08-26"
	now := time.Now().UTC()

	if _, err := repo.Create(dbc, &types.MissionCompletion{UserID: u.ID, MissionID: "comp-m1", Day: day, XPEarned: 15, CompletedAt: now}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Same mission on another day is a distinct fact.
	if _, err := repo.Create(dbc, &types.MissionCompletion{UserID: u.ID, MissionID: "comp-m1", Day: "2026-08-27", XPEarned: 15, CompletedAt: now}); err != nil {
		t.Fatalf("Create next day: %v", err)
	}

	rows, err := repo.ListByUserDay(dbc, u.ID, day)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListByUserDay: err=%v len=%d", err, len(rows))
	}
	if _, err := repo.GetByUserMissionDay(dbc, u.ID, "comp-m1", day); err != nil {
		t.Fatalf("GetByUserMissionDay: %v", err)
	}
	if n, err := repo.CountByUser(dbc, u.ID); err != nil || n != 2 {
		t.Fatalf("CountByUser: err=%v n=%d", err, n)
	}

	// The duplicate insert goes last: the unique violation aborts the
	// wrapping test transaction.
	_, err = repo.Create(dbc, &types.MissionCompletion{UserID: u.ID, MissionID: "comp-m1", Day: day, XPEarned: 15, CompletedAt: now})
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("duplicate Create: err=%v, want ErrAlreadyCompleted", err)
	}
}

func TestProgressionRepoAddExperience(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewProgressionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "progression@test.dev")

	// First credit creates the aggregate.
	p, err := repo.AddExperience(dbc, u.ID, 60)
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if p.TotalXP != 60 || p.CurrentLevel != 1 {
		t.Fatalf("after first credit: xp=%d level=%d", p.TotalXP, p.CurrentLevel)
	}

	// Second credit increments and crosses the level boundary.
	p, err = repo.AddExperience(dbc, u.ID, 60)
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if p.TotalXP != 120 || p.CurrentLevel != 2 {
		t.Fatalf("after second credit: xp=%d level=%d", p.TotalXP, p.CurrentLevel)
	}

	got, err := repo.GetByUserID(dbc, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.TotalXP != 120 {
		t.Fatalf("GetByUserID xp=%d, want 120", got.TotalXP)
	}

	// First read for an unknown user bootstraps a zeroed row.
	other := testutil.SeedUser(t, ctx, tx, "progression2@test.dev")
	zero, err := repo.GetOrCreate(dbc, other.ID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if zero.TotalXP != 0 || zero.CurrentLevel != 1 {
		t.Fatalf("GetOrCreate: xp=%d level=%d", zero.TotalXP, zero.CurrentLevel)
	}
	if _, err := repo.GetByUserID(dbc, other.ID); err != nil {
		t.Fatalf("row not persisted by GetOrCreate: %v", err)
	}
}
