package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bloomwell/bloom-backend/internal/http/response"
	"github.com/bloomwell/bloom-backend/internal/services"
)

type ReminderHandler struct {
	reminderService services.ReminderService
}

func NewReminderHandler(reminderService services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// GET /reminders
func (rh *ReminderHandler) List(c *gin.Context) {
	reminders, err := rh.reminderService.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusInternalServerError, "reminders_failed")
		return
	}
	response.RespondOK(c, gin.H{"reminders": reminders})
}

// POST /reminders
func (rh *ReminderHandler) Create(c *gin.Context) {
	var req services.ReminderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	reminder, err := rh.reminderService.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "reminder_create_failed")
		return
	}
	response.RespondOK(c, gin.H{"reminder": reminder})
}

// PUT /reminders/:id
func (rh *ReminderHandler) Update(c *gin.Context) {
	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_reminder_id", err)
		return
	}
	var req services.ReminderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	reminder, err := rh.reminderService.Update(c.Request.Context(), currentUserID(c), reminderID, req)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "reminder_update_failed")
		return
	}
	response.RespondOK(c, gin.H{"reminder": reminder})
}

// DELETE /reminders/:id
func (rh *ReminderHandler) Delete(c *gin.Context) {
	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_reminder_id", err)
		return
	}
	if err := rh.reminderService.Delete(c.Request.Context(), currentUserID(c), reminderID); err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "reminder_delete_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
