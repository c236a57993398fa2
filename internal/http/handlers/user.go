package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloomwell/bloom-backend/internal/http/response"
	"github.com/bloomwell/bloom-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /users/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	user, err := uh.userService.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "user_lookup_failed")
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

// PUT /users/me/photo
// body: { "photo": "data:image/...;base64,..." }
func (uh *UserHandler) UpdateProfilePhoto(c *gin.Context) {
	var req struct {
		Photo string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := uh.userService.UpdateProfilePhoto(c.Request.Context(), currentUserID(c), req.Photo)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "photo_update_failed")
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}
