package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	wellnessrepo "github.com/bloomwell/bloom-backend/internal/data/repos/wellness"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/domain/missions"
	"github.com/bloomwell/bloom-backend/internal/domain/wellness"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

// moodHistoryLimit caps the history endpoint, newest first.
const moodHistoryLimit = 100

var validMoodEmojis = map[string]bool{
	"😢": true, "😞": true, "😐": true, "😊": true, "😄": true,
}

type MoodService interface {
	// Record creates today's entry or updates it in place.
	Record(ctx context.Context, userID uuid.UUID, level int, emoji, description string) (*types.MoodEntry, error)
	History(ctx context.Context, userID uuid.UUID) ([]*types.MoodEntry, error)
	Today(ctx context.Context, userID uuid.UUID) (*types.MoodEntry, error)
	Week(ctx context.Context, userID uuid.UUID) ([]*types.MoodEntry, error)
}

type moodService struct {
	db       *gorm.DB
	log      *logger.Logger
	clock    Clock
	moodRepo wellnessrepo.MoodRepo
}

func NewMoodService(db *gorm.DB, log *logger.Logger, clock Clock, moodRepo wellnessrepo.MoodRepo) MoodService {
	serviceLog := log.With("service", "MoodService")
	return &moodService{db: db, log: serviceLog, clock: clock, moodRepo: moodRepo}
}

func (svc *moodService) Record(ctx context.Context, userID uuid.UUID, level int, emoji, description string) (*types.MoodEntry, error) {
	if level < wellness.MoodLevelMin || level > wellness.MoodLevelMax {
		return nil, invalidInput(fmt.Errorf("mood level must be between %d and %d", wellness.MoodLevelMin, wellness.MoodLevelMax))
	}
	if !validMoodEmojis[emoji] {
		return nil, invalidInput(errors.New("invalid mood emoji"))
	}
	if len(description) > 500 {
		return nil, invalidInput(errors.New("description too long"))
	}

	day := missions.DayOf(svc.clock.Now())
	dbc := dbctx.Context{Ctx: ctx}

	existing, err := svc.moodRepo.GetByUserDay(dbc, userID, day)
	if err == nil {
		if uErr := svc.moodRepo.UpdateFields(dbc, existing.ID, map[string]interface{}{
			"mood_level":  level,
			"mood_emoji":  emoji,
			"description": description,
		}); uErr != nil {
			return nil, fmt.Errorf("update mood entry: %w", uErr)
		}
		return svc.moodRepo.GetByUserDay(dbc, userID, day)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load mood entry: %w", err)
	}

	entry := &types.MoodEntry{
		UserID:      userID,
		Day:         day,
		MoodLevel:   level,
		MoodEmoji:   emoji,
		Description: description,
	}
	created, err := svc.moodRepo.Create(dbc, entry)
	if err != nil {
		// Two same-day writers can race past the read; the unique index
		// picks a winner and we fold the loser into an update.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return svc.Record(ctx, userID, level, emoji, description)
		}
		return nil, fmt.Errorf("create mood entry: %w", err)
	}
	return created, nil
}

func (svc *moodService) History(ctx context.Context, userID uuid.UUID) ([]*types.MoodEntry, error) {
	entries, err := svc.moodRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID, moodHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list mood history: %w", err)
	}
	return entries, nil
}

func (svc *moodService) Today(ctx context.Context, userID uuid.UUID) (*types.MoodEntry, error) {
	day := missions.DayOf(svc.clock.Now())
	entry, err := svc.moodRepo.GetByUserDay(dbctx.Context{Ctx: ctx}, userID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMoodNotFound
		}
		return nil, fmt.Errorf("load today's mood: %w", err)
	}
	return entry, nil
}

func (svc *moodService) Week(ctx context.Context, userID uuid.UUID) ([]*types.MoodEntry, error) {
	since := svc.clock.Now().Add(-7 * 24 * time.Hour)
	entries, err := svc.moodRepo.ListByUserSince(dbctx.Context{Ctx: ctx}, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list week moods: %w", err)
	}
	return entries, nil
}
