package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tecsup/autobody-backend/internal/requestdata"
	"github.com/tecsup/autobody-backend/internal/services"
)

var errMissingRefreshToken = errors.New("missing refresh_token")

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		RespondFault(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	pair, err := ah.authService.Login(c.Request.Context(), req)
	if err != nil {
		RespondFault(c, err)
		return
	}
	expiresIn := int(ah.authService.AccessTTL().Seconds())
	RespondOK(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    expiresIn,
		"user":          pair.User,
	})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		RespondError(c, http.StatusBadRequest, "bad_request", errMissingRefreshToken)
		return
	}
	ctx := c.Request.Context()
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		rd.RefreshToken = req.RefreshToken
	}
	pair, err := ah.authService.Refresh(ctx)
	if err != nil {
		RespondFault(c, err)
		return
	}
	expiresIn := int(ah.authService.AccessTTL().Seconds())
	RespondOK(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    expiresIn,
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
