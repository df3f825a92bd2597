package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tecsup/autobody-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	user, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user, "displayName": uh.userService.DisplayName(c.Request.Context())})
}
