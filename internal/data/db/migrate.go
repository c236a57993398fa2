package db

import (
	types "github.com/bloomwell/bloom-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Mission engine
		&types.MissionDefinition{},
		&types.DailySelection{},
		&types.MissionCompletion{},
		&types.UserProgression{},

		// Wellness journal
		&types.MoodEntry{},
		&types.GratitudeEntry{},
		&types.BreathingSession{},
		&types.Reminder{},

		// Companion chat
		&types.ChatConversation{},
		&types.ChatMessage{},
	)
}
