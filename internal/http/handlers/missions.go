package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloomwell/bloom-backend/internal/http/response"
	"github.com/bloomwell/bloom-backend/internal/services"
)

type MissionHandler struct {
	missionService services.MissionService
}

func NewMissionHandler(missionService services.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// GET /missions/today
func (mh *MissionHandler) Today(c *gin.Context) {
	today, err := mh.missionService.TodaysMissions(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "missions_failed")
		return
	}
	response.RespondOK(c, today)
}

// POST /missions/complete
// body: { "mission_id": "..." }
func (mh *MissionHandler) Complete(c *gin.Context) {
	var req struct {
		MissionID string `json:"mission_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := mh.missionService.CompleteMission(c.Request.Context(), currentUserID(c), req.MissionID)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "completion_failed")
		return
	}
	response.RespondOK(c, result)
}

// GET /missions/stats
func (mh *MissionHandler) Stats(c *gin.Context) {
	stats, err := mh.missionService.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "stats_failed")
		return
	}
	response.RespondOK(c, stats)
}
