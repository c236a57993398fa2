package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	missionsrepo "github.com/bloomwell/bloom-backend/internal/data/repos/missions"
	wellnessrepo "github.com/bloomwell/bloom-backend/internal/data/repos/wellness"
	"github.com/bloomwell/bloom-backend/internal/domain/wellness"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
)

func TestMoodRecordUpdatesInPlace(t *testing.T) {
	gdb := engineDB(t)
	log := testLogger(t)
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	svc := NewMoodService(gdb, log, fixedClock{now: now}, wellnessrepo.NewMoodRepo(gdb, log))
	userID := uuid.New()
	ctx := context.Background()

	first, err := svc.Record(ctx, userID, 2, "😞", "rough morning")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.MoodLevel != 2 {
		t.Fatalf("level = %d, want 2", first.MoodLevel)
	}

	second, err := svc.Record(ctx, userID, 4, "😊", "better after lunch")
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("same-day record created a second row")
	}
	if second.MoodLevel != 4 || second.MoodEmoji != "😊" {
		t.Fatalf("entry not updated: %+v", second)
	}

	history, err := svc.History(ctx, userID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
}

func TestMoodRecordRejectsBadInput(t *testing.T) {
	gdb := engineDB(t)
	log := testLogger(t)
	svc := NewMoodService(gdb, log, fixedClock{now: time.Now()}, wellnessrepo.NewMoodRepo(gdb, log))
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.Record(ctx, userID, 0, "😊", ""); err == nil {
		t.Fatal("level 0 accepted")
	}
	if _, err := svc.Record(ctx, userID, 6, "😊", ""); err == nil {
		t.Fatal("level 6 accepted")
	}
	if _, err := svc.Record(ctx, userID, 3, "🍕", ""); err == nil {
		t.Fatal("unknown emoji accepted")
	}
}

func TestMoodTodayNotFound(t *testing.T) {
	gdb := engineDB(t)
	log := testLogger(t)
	svc := NewMoodService(gdb, log, fixedClock{now: time.Now()}, wellnessrepo.NewMoodRepo(gdb, log))

	_, err := svc.Today(context.Background(), uuid.New())
	if !errors.Is(err, ErrMoodNotFound) {
		t.Fatalf("err = %v, want ErrMoodNotFound", err)
	}
}

func TestGratitudeOncePerDayWithXP(t *testing.T) {
	gdb := engineDB(t)
	log := testLogger(t)
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	progression := missionsrepo.NewProgressionRepo(gdb, log)
	svc := NewGratitudeService(gdb, log, fixedClock{now: now}, wellnessrepo.NewGratitudeRepo(gdb, log), progression)
	userID := uuid.New()
	ctx := context.Background()

	result, err := svc.Create(ctx, userID, []string{"coffee", "sunshine"}, "good start")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.XPEarned != gratitudeXPReward {
		t.Fatalf("xp = %d, want %d", result.XPEarned, gratitudeXPReward)
	}
	items, err := result.Entry.DecodeGratitudes()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %v", items)
	}

	prog, err := progression.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		t.Fatalf("progression: %v", err)
	}
	if prog.TotalXP != gratitudeXPReward {
		t.Fatalf("total xp = %d, want %d", prog.TotalXP, gratitudeXPReward)
	}

	if _, err := svc.Create(ctx, userID, []string{"again"}, ""); !errors.Is(err, ErrGratitudeExists) {
		t.Fatalf("second entry err = %v, want ErrGratitudeExists", err)
	}
	prog, err = progression.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		t.Fatalf("progression reload: %v", err)
	}
	if prog.TotalXP != gratitudeXPReward {
		t.Fatalf("rejected entry credited xp: %d", prog.TotalXP)
	}
}

func TestGratitudeTruncatesToMax(t *testing.T) {
	gdb := engineDB(t)
	log := testLogger(t)
	svc := NewGratitudeService(gdb, log, fixedClock{now: time.Now()}, wellnessrepo.NewGratitudeRepo(gdb, log), missionsrepo.NewProgressionRepo(gdb, log))

	result, err := svc.Create(context.Background(), uuid.New(), []string{"a", "b", "c", "d", "e"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	items, err := result.Entry.DecodeGratitudes()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != wellness.MaxGratitudes {
		t.Fatalf("items = %d, want %d", len(items), wellness.MaxGratitudes)
	}
}

func TestBreathingXPOnlyWhenCompleted(t *testing.T) {
	gdb := engineDB(t)
	log := testLogger(t)
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	progression := missionsrepo.NewProgressionRepo(gdb, log)
	svc := NewBreathingService(gdb, log, fixedClock{now: now}, wellnessrepo.NewBreathingRepo(gdb, log), progression)
	userID := uuid.New()
	ctx := context.Background()

	abandoned, err := svc.RecordSession(ctx, userID, string(wellness.TechniqueBox), 60, false)
	if err != nil {
		t.Fatalf("abandoned session: %v", err)
	}
	if abandoned.XPEarned != 0 {
		t.Fatalf("abandoned session earned %d xp", abandoned.XPEarned)
	}

	finished, err := svc.RecordSession(ctx, userID, string(wellness.TechniqueFourSevenEight), 240, true)
	if err != nil {
		t.Fatalf("finished session: %v", err)
	}
	if finished.XPEarned != breathingXPReward {
		t.Fatalf("xp = %d, want %d", finished.XPEarned, breathingXPReward)
	}

	prog, err := progression.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		t.Fatalf("progression: %v", err)
	}
	if prog.TotalXP != breathingXPReward {
		t.Fatalf("total xp = %d, want %d", prog.TotalXP, breathingXPReward)
	}
}

func TestBreathingStats(t *testing.T) {
	gdb := engineDB(t)
	log := testLogger(t)
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	svc := NewBreathingService(gdb, log, fixedClock{now: now}, wellnessrepo.NewBreathingRepo(gdb, log), missionsrepo.NewProgressionRepo(gdb, log))
	userID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.RecordSession(ctx, userID, string(wellness.TechniqueBox), 120, true); err != nil {
			t.Fatalf("session %d: %v", i, err)
		}
	}
	if _, err := svc.RecordSession(ctx, userID, string(wellness.TechniqueDeep), 120, true); err != nil {
		t.Fatalf("deep session: %v", err)
	}
	if _, err := svc.RecordSession(ctx, userID, string(wellness.TechniqueDeep), 30, false); err != nil {
		t.Fatalf("abandoned session: %v", err)
	}

	stats, err := svc.Stats(ctx, userID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalSessions != 4 {
		t.Fatalf("total sessions = %d, want 4", stats.TotalSessions)
	}
	if stats.WeekSessions != 4 {
		t.Fatalf("week sessions = %d, want 4", stats.WeekSessions)
	}
	if stats.FavoriteTechnique != string(wellness.TechniqueBox) {
		t.Fatalf("favorite = %q, want box", stats.FavoriteTechnique)
	}
	if stats.TotalStarsEarned != 4*starsPerSession {
		t.Fatalf("stars = %d", stats.TotalStarsEarned)
	}
}

func TestReminderLifecycle(t *testing.T) {
	gdb := engineDB(t)
	log := testLogger(t)
	svc := NewReminderService(gdb, log, wellnessrepo.NewReminderRepo(gdb, log))
	userID := uuid.New()
	ctx := context.Background()

	typ, title, at := "water", "Drink water", "09:30"
	days := []int{1, 2, 3, 4, 5}
	created, err := svc.Create(ctx, userID, ReminderInput{Type: &typ, Title: &title, Time: &at, Days: &days})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.Enabled {
		t.Fatal("reminder not enabled by default")
	}

	disabled := false
	newTitle := "Hydrate"
	updated, err := svc.Update(ctx, userID, created.ID, ReminderInput{Title: &newTitle, Enabled: &disabled})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != newTitle || updated.Enabled {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.TimeOfDay != at {
		t.Fatalf("untouched field changed: %q", updated.TimeOfDay)
	}

	// Another user cannot touch it.
	if _, err := svc.Update(ctx, uuid.New(), created.ID, ReminderInput{Title: &newTitle}); !errors.Is(err, ErrReminderNotFound) {
		t.Fatalf("cross-user update err = %v, want ErrReminderNotFound", err)
	}

	if err := svc.Delete(ctx, userID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	reminders, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reminders) != 0 {
		t.Fatalf("reminder still listed after delete: %d", len(reminders))
	}
	if err := svc.Delete(ctx, userID, created.ID); !errors.Is(err, ErrReminderNotFound) {
		t.Fatalf("double delete err = %v, want ErrReminderNotFound", err)
	}
}

func TestReminderValidation(t *testing.T) {
	gdb := engineDB(t)
	log := testLogger(t)
	svc := NewReminderService(gdb, log, wellnessrepo.NewReminderRepo(gdb, log))
	userID := uuid.New()
	ctx := context.Background()

	title, at := "t", "09:30"
	days := []int{1}

	badType := "lunch"
	if _, err := svc.Create(ctx, userID, ReminderInput{Type: &badType, Title: &title, Time: &at, Days: &days}); err == nil {
		t.Fatal("unknown type accepted")
	}
	typ := "mood"
	badTime := "25:99"
	if _, err := svc.Create(ctx, userID, ReminderInput{Type: &typ, Title: &title, Time: &badTime, Days: &days}); err == nil {
		t.Fatal("bad time accepted")
	}
	badDays := []int{7}
	if _, err := svc.Create(ctx, userID, ReminderInput{Type: &typ, Title: &title, Time: &at, Days: &badDays}); err == nil {
		t.Fatal("day 7 accepted")
	}
}
