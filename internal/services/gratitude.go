package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	missionrepo "github.com/bloomwell/bloom-backend/internal/data/repos/missions"
	wellnessrepo "github.com/bloomwell/bloom-backend/internal/data/repos/wellness"
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/domain/missions"
	"github.com/bloomwell/bloom-backend/internal/domain/wellness"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

const (
	// gratitudeXPReward is credited once per day, on the first entry.
	gratitudeXPReward = 10

	gratitudeHistoryLimit = 30
	maxGratitudeLength    = 500
	maxReflectionLength   = 1000
)

// GratitudeEntryResult pairs the stored entry with the XP it granted.
type GratitudeEntryResult struct {
	Entry    *types.GratitudeEntry
	XPEarned int
}

type GratitudeService interface {
	// Create stores today's gratitude entry and credits XP. A second
	// entry for the same day returns ErrGratitudeExists.
	Create(ctx context.Context, userID uuid.UUID, gratitudes []string, reflection string) (*GratitudeEntryResult, error)
	Today(ctx context.Context, userID uuid.UUID) (*types.GratitudeEntry, error)
	History(ctx context.Context, userID uuid.UUID) ([]*types.GratitudeEntry, error)
}

type gratitudeService struct {
	db              *gorm.DB
	log             *logger.Logger
	clock           Clock
	gratitudeRepo   wellnessrepo.GratitudeRepo
	progressionRepo missionrepo.ProgressionRepo
}

func NewGratitudeService(
	db *gorm.DB,
	log *logger.Logger,
	clock Clock,
	gratitudeRepo wellnessrepo.GratitudeRepo,
	progressionRepo missionrepo.ProgressionRepo,
) GratitudeService {
	serviceLog := log.With("service", "GratitudeService")
	return &gratitudeService{
		db:              db,
		log:             serviceLog,
		clock:           clock,
		gratitudeRepo:   gratitudeRepo,
		progressionRepo: progressionRepo,
	}
}

func (svc *gratitudeService) Create(ctx context.Context, userID uuid.UUID, gratitudes []string, reflection string) (*GratitudeEntryResult, error) {
	cleaned := make([]string, 0, wellness.MaxGratitudes)
	for _, g := range gratitudes {
		if g == "" {
			continue
		}
		if len(g) > maxGratitudeLength {
			return nil, invalidInput(errors.New("gratitude item too long"))
		}
		cleaned = append(cleaned, g)
		if len(cleaned) == wellness.MaxGratitudes {
			break
		}
	}
	if len(cleaned) == 0 {
		return nil, invalidInput(errors.New("at least one gratitude is required"))
	}
	if len(reflection) > maxReflectionLength {
		return nil, invalidInput(errors.New("reflection too long"))
	}

	encoded, err := wellness.EncodeGratitudes(cleaned)
	if err != nil {
		return nil, fmt.Errorf("encode gratitudes: %w", err)
	}

	day := missions.DayOf(svc.clock.Now())
	var result GratitudeEntryResult
	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		entry, cErr := svc.gratitudeRepo.Create(dbc, &types.GratitudeEntry{
			UserID:     userID,
			Day:        day,
			Gratitudes: encoded,
			Reflection: reflection,
		})
		if cErr != nil {
			return cErr
		}

		if _, pErr := svc.progressionRepo.AddExperience(dbc, userID, gratitudeXPReward); pErr != nil {
			return fmt.Errorf("credit gratitude xp: %w", pErr)
		}

		result = GratitudeEntryResult{Entry: entry, XPEarned: gratitudeXPReward}
		return nil
	})
	if err != nil {
		if errors.Is(err, wellnessrepo.ErrGratitudeExists) {
			return nil, ErrGratitudeExists
		}
		return nil, err
	}
	return &result, nil
}

func (svc *gratitudeService) Today(ctx context.Context, userID uuid.UUID) (*types.GratitudeEntry, error) {
	day := missions.DayOf(svc.clock.Now())
	entry, err := svc.gratitudeRepo.GetByUserDay(dbctx.Context{Ctx: ctx}, userID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load today's gratitude: %w", err)
	}
	return entry, nil
}

func (svc *gratitudeService) History(ctx context.Context, userID uuid.UUID) ([]*types.GratitudeEntry, error) {
	entries, err := svc.gratitudeRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID, gratitudeHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list gratitude history: %w", err)
	}
	return entries, nil
}
