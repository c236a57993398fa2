package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/bloomwell/bloom-backend/internal/clients/openai"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
	"github.com/bloomwell/bloom-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Catalog   services.CatalogService
	Mission   services.MissionService
	Mood      services.MoodService
	Gratitude services.GratitudeService
	Breathing services.BreathingService
	Reminder  services.ReminderService
	Chat      services.ChatService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	clock := services.SystemClock()

	openaiClient, err := openai.NewClient(log, openai.Config{
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.OpenAIModel,
		MaxRetries: 2,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init openai client: %w", err)
	}

	authService := services.NewAuthService(db, log, repos.User, repos.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(db, log, repos.User)
	catalogService := services.NewCatalogService(log, repos.Catalog)
	missionService := services.NewMissionService(db, log, clock, catalogService, repos.DailySelection, repos.Completion, repos.Progression)
	moodService := services.NewMoodService(db, log, clock, repos.Mood)
	gratitudeService := services.NewGratitudeService(db, log, clock, repos.Gratitude, repos.Progression)
	breathingService := services.NewBreathingService(db, log, clock, repos.Breathing, repos.Progression)
	reminderService := services.NewReminderService(db, log, repos.Reminder)
	chatService := services.NewChatService(db, log, clock, openaiClient, repos.Conversation, repos.Message, repos.Mood, repos.Completion, repos.Progression)

	return Services{
		Auth:      authService,
		User:      userService,
		Catalog:   catalogService,
		Mission:   missionService,
		Mood:      moodService,
		Gratitude: gratitudeService,
		Breathing: breathingService,
		Reminder:  reminderService,
		Chat:      chatService,
	}, nil
}
