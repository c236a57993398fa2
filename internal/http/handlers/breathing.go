package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloomwell/bloom-backend/internal/http/response"
	"github.com/bloomwell/bloom-backend/internal/services"
)

type BreathingHandler struct {
	breathingService services.BreathingService
}

func NewBreathingHandler(breathingService services.BreathingService) *BreathingHandler {
	return &BreathingHandler{breathingService: breathingService}
}

// POST /breathing/session
// body: { "technique": "4-7-8" | "box" | "deep", "duration_seconds": 240, "completed": true }
func (bh *BreathingHandler) RecordSession(c *gin.Context) {
	var req struct {
		Technique       string `json:"technique"`
		DurationSeconds int    `json:"duration_seconds"`
		Completed       bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := bh.breathingService.RecordSession(c.Request.Context(), currentUserID(c), req.Technique, req.DurationSeconds, req.Completed)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "breathing_failed")
		return
	}
	response.RespondOK(c, gin.H{"session": result.Session, "xp_earned": result.XPEarned})
}

// GET /breathing/stats
func (bh *BreathingHandler) Stats(c *gin.Context) {
	stats, err := bh.breathingService.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "breathing_stats_failed")
		return
	}
	response.RespondOK(c, stats)
}
