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
	"github.com/bloomwell/bloom-backend/internal/domain/wellness"
	"github.com/bloomwell/bloom-backend/internal/pkg/dbctx"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

// ReminderInput carries the mutable fields of a reminder. Update uses
// pointers so absent fields are left untouched.
type ReminderInput struct {
	Type    *string `json:"type"`
	Title   *string `json:"title"`
	Time    *string `json:"time"`
	Days    *[]int  `json:"days"`
	Enabled *bool   `json:"enabled"`
}

type ReminderService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Reminder, error)
	Create(ctx context.Context, userID uuid.UUID, input ReminderInput) (*types.Reminder, error)
	Update(ctx context.Context, userID, reminderID uuid.UUID, input ReminderInput) (*types.Reminder, error)
	Delete(ctx context.Context, userID, reminderID uuid.UUID) error
}

type reminderService struct {
	db           *gorm.DB
	log          *logger.Logger
	reminderRepo wellnessrepo.ReminderRepo
}

func NewReminderService(db *gorm.DB, log *logger.Logger, reminderRepo wellnessrepo.ReminderRepo) ReminderService {
	serviceLog := log.With("service", "ReminderService")
	return &reminderService{db: db, log: serviceLog, reminderRepo: reminderRepo}
}

func validReminderType(t string) bool {
	switch wellness.ReminderType(t) {
	case wellness.ReminderMood, wellness.ReminderWater, wellness.ReminderBreak,
		wellness.ReminderSleep, wellness.ReminderMeditation, wellness.ReminderGratitude:
		return true
	}
	return false
}

func validReminderTime(hhmm string) bool {
	_, err := time.Parse("15:04", hhmm)
	return err == nil
}

func validReminderDays(days []int) bool {
	if len(days) == 0 || len(days) > 7 {
		return false
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

func (svc *reminderService) List(ctx context.Context, userID uuid.UUID) ([]*types.Reminder, error) {
	reminders, err := svc.reminderRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

func (svc *reminderService) Create(ctx context.Context, userID uuid.UUID, input ReminderInput) (*types.Reminder, error) {
	if input.Type == nil || !validReminderType(*input.Type) {
		return nil, invalidInput(errors.New("invalid reminder type"))
	}
	if input.Title == nil || *input.Title == "" {
		return nil, invalidInput(errors.New("title is required"))
	}
	if input.Time == nil || !validReminderTime(*input.Time) {
		return nil, invalidInput(errors.New("time must be HH:MM"))
	}
	if input.Days == nil || !validReminderDays(*input.Days) {
		return nil, invalidInput(errors.New("days must hold weekday numbers 0 through 6"))
	}

	encodedDays, err := wellness.EncodeDays(*input.Days)
	if err != nil {
		return nil, fmt.Errorf("encode days: %w", err)
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	reminder, err := svc.reminderRepo.Create(dbctx.Context{Ctx: ctx}, &types.Reminder{
		UserID:    userID,
		Type:      wellness.ReminderType(*input.Type),
		Title:     *input.Title,
		TimeOfDay: *input.Time,
		Days:      encodedDays,
		Enabled:   enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	return reminder, nil
}

func (svc *reminderService) Update(ctx context.Context, userID, reminderID uuid.UUID, input ReminderInput) (*types.Reminder, error) {
	dbc := dbctx.Context{Ctx: ctx}

	if _, err := svc.reminderRepo.GetByIDForUser(dbc, reminderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("load reminder: %w", err)
	}

	fields := map[string]interface{}{}
	if input.Type != nil {
		if !validReminderType(*input.Type) {
			return nil, invalidInput(errors.New("invalid reminder type"))
		}
		fields["type"] = *input.Type
	}
	if input.Title != nil {
		if *input.Title == "" {
			return nil, invalidInput(errors.New("title cannot be empty"))
		}
		fields["title"] = *input.Title
	}
	if input.Time != nil {
		if !validReminderTime(*input.Time) {
			return nil, invalidInput(errors.New("time must be HH:MM"))
		}
		fields["time_of_day"] = *input.Time
	}
	if input.Days != nil {
		if !validReminderDays(*input.Days) {
			return nil, invalidInput(errors.New("days must hold weekday numbers 0 through 6"))
		}
		encodedDays, err := wellness.EncodeDays(*input.Days)
		if err != nil {
			return nil, fmt.Errorf("encode days: %w", err)
		}
		fields["days"] = encodedDays
	}
	if input.Enabled != nil {
		fields["enabled"] = *input.Enabled
	}

	if len(fields) > 0 {
		if err := svc.reminderRepo.UpdateFields(dbc, reminderID, fields); err != nil {
			return nil, fmt.Errorf("update reminder: %w", err)
		}
	}

	reminder, err := svc.reminderRepo.GetByIDForUser(dbc, reminderID, userID)
	if err != nil {
		return nil, fmt.Errorf("reload reminder: %w", err)
	}
	return reminder, nil
}

func (svc *reminderService) Delete(ctx context.Context, userID, reminderID uuid.UUID) error {
	dbc := dbctx.Context{Ctx: ctx}

	if _, err := svc.reminderRepo.GetByIDForUser(dbc, reminderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReminderNotFound
		}
		return fmt.Errorf("load reminder: %w", err)
	}

	if err := svc.reminderRepo.SoftDeleteByIDForUser(dbc, reminderID, userID); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}
