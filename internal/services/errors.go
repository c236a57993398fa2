package services

import (
	"errors"
	"net/http"

	"github.com/bloomwell/bloom-backend/internal/platform/apierr"
)

// Typed service errors. Handlers surface them through
// response.RespondServiceError, everything else maps to a 500.
var (
	ErrInvalidCredentials = apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid email or password"))
	ErrEmailTaken         = apierr.New(http.StatusConflict, "email_taken", errors.New("email is already registered"))
	ErrUserNotFound       = apierr.New(http.StatusNotFound, "user_not_found", errors.New("user not found"))

	ErrMissionNotFound     = apierr.New(http.StatusNotFound, "mission_not_found", errors.New("mission not found"))
	ErrInsufficientCatalog = apierr.New(http.StatusInternalServerError, "insufficient_catalog", errors.New("fewer than three missions eligible for selection"))

	ErrMoodNotFound         = apierr.New(http.StatusNotFound, "mood_not_found", errors.New("no mood entry for today"))
	ErrGratitudeExists      = apierr.New(http.StatusBadRequest, "gratitude_exists", errors.New("gratitude already logged today, edit the existing entry"))
	ErrReminderNotFound     = apierr.New(http.StatusNotFound, "reminder_not_found", errors.New("reminder not found"))
	ErrConversationNotFound = apierr.New(http.StatusNotFound, "conversation_not_found", errors.New("conversation not found"))

	ErrInvalidInput = apierr.New(http.StatusBadRequest, "invalid_request", errors.New("invalid request"))
)

func invalidInput(err error) error {
	return apierr.New(http.StatusBadRequest, "invalid_request", err)
}
