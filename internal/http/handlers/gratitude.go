package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloomwell/bloom-backend/internal/http/response"
	"github.com/bloomwell/bloom-backend/internal/services"
)

type GratitudeHandler struct {
	gratitudeService services.GratitudeService
}

func NewGratitudeHandler(gratitudeService services.GratitudeService) *GratitudeHandler {
	return &GratitudeHandler{gratitudeService: gratitudeService}
}

// POST /gratitude
// body: { "gratitudes": ["...", "...", "..."], "reflection": "..." }
func (gh *GratitudeHandler) Create(c *gin.Context) {
	var req struct {
		Gratitudes []string `json:"gratitudes"`
		Reflection string   `json:"reflection"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := gh.gratitudeService.Create(c.Request.Context(), currentUserID(c), req.Gratitudes, req.Reflection)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "gratitude_failed")
		return
	}
	response.RespondOK(c, gin.H{"entry": result.Entry, "xp_earned": result.XPEarned})
}

// GET /gratitude/today
func (gh *GratitudeHandler) Today(c *gin.Context) {
	entry, err := gh.gratitudeService.Today(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "gratitude_today_failed")
		return
	}
	response.RespondOK(c, gin.H{"entry": entry})
}

// GET /gratitude/history
func (gh *GratitudeHandler) History(c *gin.Context) {
	entries, err := gh.gratitudeService.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "gratitude_history_failed")
		return
	}
	response.RespondOK(c, gin.H{"entries": entries})
}
