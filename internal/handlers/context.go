package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tecsup/autobody-backend/internal/requestdata"
)

func sessionUserID(c *gin.Context) string {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return ""
	}
	return rd.UserID
}
