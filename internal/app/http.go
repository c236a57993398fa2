package app

import (
	"github.com/gin-gonic/gin"

	"github.com/bloomwell/bloom-backend/internal/http"
	httpH "github.com/bloomwell/bloom-backend/internal/http/handlers"
	httpMW "github.com/bloomwell/bloom-backend/internal/http/middleware"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	User      *httpH.UserHandler
	Mission   *httpH.MissionHandler
	Mood      *httpH.MoodHandler
	Gratitude *httpH.GratitudeHandler
	Breathing *httpH.BreathingHandler
	Reminder  *httpH.ReminderHandler
	Chat      *httpH.ChatHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(services.Auth),
		User:      httpH.NewUserHandler(services.User),
		Mission:   httpH.NewMissionHandler(services.Mission),
		Mood:      httpH.NewMoodHandler(services.Mood),
		Gratitude: httpH.NewGratitudeHandler(services.Gratitude),
		Breathing: httpH.NewBreathingHandler(services.Breathing),
		Reminder:  httpH.NewReminderHandler(services.Reminder),
		Chat:      httpH.NewChatHandler(services.Chat),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:              log,
		AuthMiddleware:   middleware.Auth,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		UserHandler:      handlers.User,
		MissionHandler:   handlers.Mission,
		MoodHandler:      handlers.Mood,
		GratitudeHandler: handlers.Gratitude,
		BreathingHandler: handlers.Breathing,
		ReminderHandler:  handlers.Reminder,
		ChatHandler:      handlers.Chat,
	})
}
