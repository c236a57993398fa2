package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/bloomwell/bloom-backend/internal/http/handlers"
	httpMW "github.com/bloomwell/bloom-backend/internal/http/middleware"
	"github.com/bloomwell/bloom-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	UserHandler      *httpH.UserHandler
	MissionHandler   *httpH.MissionHandler
	MoodHandler      *httpH.MoodHandler
	GratitudeHandler *httpH.GratitudeHandler
	BreathingHandler *httpH.BreathingHandler
	ReminderHandler  *httpH.ReminderHandler
	ChatHandler      *httpH.ChatHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS())
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// User
		if cfg.UserHandler != nil {
			protected.GET("/users/me", cfg.UserHandler.GetMe)
			protected.PUT("/users/me/photo", cfg.UserHandler.UpdateProfilePhoto)
		}

		// Missions
		if cfg.MissionHandler != nil {
			protected.GET("/missions/today", cfg.MissionHandler.Today)
			protected.POST("/missions/complete", cfg.MissionHandler.Complete)
			protected.GET("/missions/stats", cfg.MissionHandler.Stats)
		}

		// Mood
		if cfg.MoodHandler != nil {
			protected.POST("/mood", cfg.MoodHandler.Record)
			protected.GET("/mood/history", cfg.MoodHandler.History)
			protected.GET("/mood/today", cfg.MoodHandler.Today)
			protected.GET("/mood/week", cfg.MoodHandler.Week)
		}

		// Gratitude
		if cfg.GratitudeHandler != nil {
			protected.POST("/gratitude", cfg.GratitudeHandler.Create)
			protected.GET("/gratitude/today", cfg.GratitudeHandler.Today)
			protected.GET("/gratitude/history", cfg.GratitudeHandler.History)
		}

		// Breathing
		if cfg.BreathingHandler != nil {
			protected.POST("/breathing/session", cfg.BreathingHandler.RecordSession)
			protected.GET("/breathing/stats", cfg.BreathingHandler.Stats)
		}

		// Reminders
		if cfg.ReminderHandler != nil {
			protected.GET("/reminders", cfg.ReminderHandler.List)
			protected.POST("/reminders", cfg.ReminderHandler.Create)
			protected.PUT("/reminders/:id", cfg.ReminderHandler.Update)
			protected.DELETE("/reminders/:id", cfg.ReminderHandler.Delete)
		}

		// Chat
		if cfg.ChatHandler != nil {
			protected.POST("/chat/message", cfg.ChatHandler.SendMessage)
			protected.GET("/chat/conversations", cfg.ChatHandler.ListConversations)
			protected.GET("/chat/conversations/:id/messages", cfg.ChatHandler.ConversationMessages)
		}
	}

	return r
}
