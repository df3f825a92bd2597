package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tecsup/autobody-backend/internal/services"
)

type ServiceHandler struct {
	appointmentService services.AppointmentService
}

func NewServiceHandler(appointmentService services.AppointmentService) *ServiceHandler {
	return &ServiceHandler{appointmentService: appointmentService}
}

func (sh *ServiceHandler) Create(c *gin.Context) {
	var req services.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	service, err := sh.appointmentService.Create(c.Request.Context(), sessionUserID(c), req)
	if err != nil {
		RespondFault(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": service})
}

func (sh *ServiceHandler) List(c *gin.Context) {
	list, err := sh.appointmentService.List(c.Request.Context(), sessionUserID(c))
	if err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"services": list})
}

func (sh *ServiceHandler) Update(c *gin.Context) {
	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := sh.appointmentService.Update(c.Request.Context(), sessionUserID(c), c.Param("id"), partial); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (sh *ServiceHandler) ChangeStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := sh.appointmentService.ChangeStatus(c.Request.Context(), sessionUserID(c), c.Param("id"), req.Status); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (sh *ServiceHandler) Delete(c *gin.Context) {
	if err := sh.appointmentService.Delete(c.Request.Context(), sessionUserID(c), c.Param("id")); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// Admin variants resolve the record owner from the path instead of the
/// session: the admin dashboard carries the userId back-reference of every
// aggregated record and triages on the client's behalf.

func (sh *ServiceHandler) AdminUpdate(c *gin.Context) {
	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := sh.appointmentService.Update(c.Request.Context(), c.Param("userId"), c.Param("id"), partial); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (sh *ServiceHandler) AdminChangeStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := sh.appointmentService.ChangeStatus(c.Request.Context(), c.Param("userId"), c.Param("id"), req.Status); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (sh *ServiceHandler) AdminDelete(c *gin.Context) {
	if err := sh.appointmentService.Delete(c.Request.Context(), c.Param("userId"), c.Param("id")); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
