package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	missionrepo "github.com/bloomwell/bloom-backend/internal/data/repos/missions"
	wellnessrepo "github.com/bloomwell/bloom-backend/internal/data/repos/wellness"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/domain/wellness"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

const (
	// breathingXPReward is granted only for sessions finished to the end.
	breathingXPReward = 5

	// starsPerSession feeds the in-app reward counter.
	starsPerSession = 5

	maxSessionSeconds = 3600
)

// BreathingSessionResult pairs the stored session with the XP it granted.
type BreathingSessionResult struct {
	Session  *types.BreathingSession
	XPEarned int
}

// BreathingStats aggregates a user's breathing practice.
type BreathingStats struct {
	TotalSessions     int64  `json:"total_sessions"`
	WeekSessions      int64  `json:"week_sessions"`
	FavoriteTechnique string `json:"favorite_technique"`
	TotalStarsEarned  int64  `json:"total_stars_earned"`
}

type BreathingService interface {
	RecordSession(ctx context.Context, userID uuid.UUID, technique string, durationSeconds int, completed bool) (*BreathingSessionResult, error)
	Stats(ctx context.Context, userID uuid.UUID) (*BreathingStats, error)
}

type breathingService struct {
	db              *gorm.DB
	log             *logger.Logger
	clock           Clock
	breathingRepo   wellnessrepo.BreathingRepo
	progressionRepo missionrepo.ProgressionRepo
}

func NewBreathingService(
	db *gorm.DB,
	log *logger.Logger,
	clock Clock,
	breathingRepo wellnessrepo.BreathingRepo,
	progressionRepo missionrepo.ProgressionRepo,
) BreathingService {
	serviceLog := log.With("service", "BreathingService")
	return &breathingService{
		db:              db,
		log:             serviceLog,
		clock:           clock,
		breathingRepo:   breathingRepo,
		progressionRepo: progressionRepo,
	}
}

func validBreathingTechnique(technique string) bool {
	switch wellness.BreathingTechnique(technique) {
	case wellness.TechniqueFourSevenEight, wellness.TechniqueBox, wellness.TechniqueDeep:
		return true
	}
	return false
}

func (svc *breathingService) RecordSession(ctx context.Context, userID uuid.UUID, technique string, durationSeconds int, completed bool) (*BreathingSessionResult, error) {
	if !validBreathingTechnique(technique) {
		return nil, invalidInput(errors.New("unknown breathing technique"))
	}
	if durationSeconds <= 0 || durationSeconds > maxSessionSeconds {
		return nil, invalidInput(errors.New("invalid session duration"))
	}

	var result BreathingSessionResult
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		session, cErr := svc.breathingRepo.Create(dbc, &types.BreathingSession{
			UserID:          userID,
			Technique:       wellness.BreathingTechnique(technique),
			DurationSeconds: durationSeconds,
			Completed:       completed,
		})
		if cErr != nil {
			return fmt.Errorf("create breathing session: %w", cErr)
		}
		result.Session = session

		if completed {
			if _, pErr := svc.progressionRepo.AddExperience(dbc, userID, breathingXPReward); pErr != nil {
				return fmt.Errorf("credit breathing xp: %w", pErr)
			}
			result.XPEarned = breathingXPReward
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (svc *breathingService) Stats(ctx context.Context, userID uuid.UUID) (*BreathingStats, error) {
	dbc := dbctx.Context{Ctx: ctx}

	total, err := svc.breathingRepo.CountCompleted(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	since := svc.clock.Now().Add(-7 * 24 * time.Hour)
	week, err := svc.breathingRepo.CountCompletedSince(dbc, userID, since)
	if err != nil {
		return nil, fmt.Errorf("count week sessions: %w", err)
	}

	favorite, err := svc.breathingRepo.FavoriteTechnique(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite technique: %w", err)
	}

	return &BreathingStats{
		TotalSessions:     total,
		WeekSessions:      week,
		FavoriteTechnique: favorite,
		TotalStarsEarned:  total * starsPerSession,
	}, nil
}
