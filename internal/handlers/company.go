package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tecsup/autobody-backend/internal/services"
)

type CompanyHandler struct {
	companyService services.CompanyService
}

func NewCompanyHandler(companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (ch *CompanyHandler) ListGlobal(c *gin.Context) {
	companies, err := ch.companyService.ListGlobal(c.Request.Context())
	if err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"companies": companies})
}

func (ch *CompanyHandler) ListPersonal(c *gin.Context) {
	companies, err := ch.companyService.ListPersonal(c.Request.Context(), sessionUserID(c))
	if err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"companies": companies})
}

func (ch *CompanyHandler) AddPersonal(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	entry, err := ch.companyService.AddPersonal(c.Request.Context(), sessionUserID(c), req.Name)
	if err != nil {
		RespondFault(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"company": entry})
}

func (ch *CompanyHandler) UpdateGlobal(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := ch.companyService.UpdateGlobal(c.Request.Context(), c.Param("name"), req.Name); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (ch *CompanyHandler) DeleteGlobal(c *gin.Context) {
	if err := ch.companyService.DeleteGlobal(c.Request.Context(), c.Param("name")); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (ch *CompanyHandler) DeletePersonal(c *gin.Context) {
	if err := ch.companyService.DeletePersonal(c.Request.Context(), sessionUserID(c), c.Param("id")); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
