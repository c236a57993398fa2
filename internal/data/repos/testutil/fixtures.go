package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bloomwell/bloom-backend/internal/domain"
	"github.com/bloomwell/bloom-backend/internal/domain/missions"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Test User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedMissionDefinition(tb testing.TB, ctx context.Context, tx *gorm.DB, id string, category missions.Category, minLevel, xp int) *types.MissionDefinition {
	tb.Helper()
	def := &types.MissionDefinition{
		ID:               id,
		Title:            "Mission " + id,
		Description:      "test mission",
		Category:         category,
		Difficulty:       missions.DifficultyEasy,
		XPReward:         xp,
		MinLevel:         minLevel,
		EstimatedMinutes: 5,
	}
	if err := tx.WithContext(ctx).Create(def).Error; err != nil {
		tb.Fatalf("seed mission definition: %v", err)
	}
	return def
}
