package app

import (
	"gorm.io/gorm"

	authrepo "github.com/bloomwell/bloom-backend/internal/data/repos/auth"
	chatrepo "github.com/bloomwell/bloom-backend/internal/data/repos/chat"
	missionsrepo "github.com/bloomwell/bloom-backend/internal/data/repos/missions"
	"github.com/bloomwell/bloom-backend/internal/data/repos/users"
	wellnessrepo "github.com/bloomwell/bloom-backend/internal/data/repos/wellness"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type Repos struct {
	User      users.UserRepo
	UserToken authrepo.UserTokenRepo

	Catalog        missionsrepo.CatalogRepo
	DailySelection missionsrepo.DailySelectionRepo
	Completion     missionsrepo.CompletionRepo
	Progression    missionsrepo.ProgressionRepo

	Mood      wellnessrepo.MoodRepo
	Gratitude wellnessrepo.GratitudeRepo
	Breathing wellnessrepo.BreathingRepo
	Reminder  wellnessrepo.ReminderRepo

	Conversation chatrepo.ConversationRepo
	Message      chatrepo.MessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           users.NewUserRepo(db, log),
		UserToken:      authrepo.NewUserTokenRepo(db, log),
		Catalog:        missionsrepo.NewCatalogRepo(db, log),
		DailySelection: missionsrepo.NewDailySelectionRepo(db, log),
		Completion:     missionsrepo.NewCompletionRepo(db, log),
		Progression:    missionsrepo.NewProgressionRepo(db, log),
		Mood:           wellnessrepo.NewMoodRepo(db, log),
		Gratitude:      wellnessrepo.NewGratitudeRepo(db, log),
		Breathing:      wellnessrepo.NewBreathingRepo(db, log),
		Reminder:       wellnessrepo.NewReminderRepo(db, log),
		Conversation:   chatrepo.NewConversationRepo(db, log),
		Message:        chatrepo.NewMessageRepo(db, log),
	}
}
