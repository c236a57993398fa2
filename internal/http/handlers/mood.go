package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloomwell/bloom-backend/internal/http/response"
	"github.com/bloomwell/bloom-backend/internal/services"
)

type MoodHandler struct {
	moodService services.MoodService
}

func NewMoodHandler(moodService services.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

// POST /mood
// body: { "mood_level": 1..5, "mood_emoji": "...", "description": "..." }
func (mh *MoodHandler) Record(c *gin.Context) {
	var req struct {
		MoodLevel   int    `json:"mood_level"`
		MoodEmoji   string `json:"mood_emoji"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := mh.moodService.Record(c.Request.Context(), currentUserID(c), req.MoodLevel, req.MoodEmoji, req.Description)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "mood_record_failed")
		return
	}
	response.RespondOK(c, gin.H{"entry": entry})
}

// GET /mood/history
func (mh *MoodHandler) History(c *gin.Context) {
	entries, err := mh.moodService.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "mood_history_failed")
		return
	}
	response.RespondOK(c, gin.H{"entries": entries})
}

// GET /mood/today
func (mh *MoodHandler) Today(c *gin.Context) {
	entry, err := mh.moodService.Today(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusNotFound, "mood_not_found")
		return
	}
	response.RespondOK(c, gin.H{"entry": entry})
}

// GET /mood/week
func (mh *MoodHandler) Week(c *gin.Context) {
	entries, err := mh.moodService.Week(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "mood_week_failed")
		return
	}
	response.RespondOK(c, gin.H{"entries": entries})
}
