package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tecsup/autobody-backend/internal/services"
)

type AdminHandler struct {
	aggregator services.AdminAggregator
}

func NewAdminHandler(aggregator services.AdminAggregator) *AdminHandler {
	return &AdminHandler{aggregator: aggregator}
}

// ListServices returns every service request in the store joined with its
// client and vehicle. The optional ?placa= query filters by plate or work
// detail substring.
func (ah *AdminHandler) ListServices(c *gin.Context) {
	views, err := ah.aggregator.AllServices(c.Request.Context())
	if err != nil {
		RespondFault(c, err)
		return
	}
	if query := c.Query("placa"); query != "" {
		views = ah.aggregator.Filter(views, query)
	}
	RespondOK(c, gin.H{"services": views})
}
