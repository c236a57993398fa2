package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloomwell/bloom-backend/internal/http/response"
	"github.com/bloomwell/bloom-backend/internal/pkg/ctxutil"
	"github.com/bloomwell/bloom-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, accessToken, refreshToken, err := ah.authService.RegisterUser(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "registration_failed")
		return
	}
	response.RespondOK(c, gin.H{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, accessToken, refreshToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	response.RespondOK(c, gin.H{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{RefreshToken: req.RefreshToken})
	accessToken, refreshToken, err := ah.authService.RefreshUser(ctx)
	if err != nil {
		response.RespondServiceError(c, err, http.StatusUnauthorized, "refresh_failed")
		return
	}
	response.RespondOK(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
		response.RespondServiceError(c, err, http.StatusBadRequest, "logout_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
