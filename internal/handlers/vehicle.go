package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tecsup/autobody-backend/internal/services"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
}

func NewVehicleHandler(vehicleService services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// Add accepts multipart form data so the mobile client can send the vehicle
// photo alongside the fields in one request.
func (vh *VehicleHandler) Add(c *gin.Context) {
	var req services.VehicleInput
	if err := c.ShouldBind(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	var image io.Reader
	imageName := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		opened, err := file.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		defer opened.Close()
		image = opened
		imageName = file.Filename
	}

	vehicle, err := vh.vehicleService.Add(c.Request.Context(), sessionUserID(c), req, image, imageName)
	if err != nil {
		RespondFault(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func (vh *VehicleHandler) List(c *gin.Context) {
	vehicles, err := vh.vehicleService.List(c.Request.Context(), sessionUserID(c))
	if err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"vehicles": vehicles})
}

func (vh *VehicleHandler) Update(c *gin.Context) {
	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := vh.vehicleService.Update(c.Request.Context(), sessionUserID(c), c.Param("id"), partial); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (vh *VehicleHandler) Delete(c *gin.Context) {
	if err := vh.vehicleService.Delete(c.Request.Context(), sessionUserID(c), c.Param("id")); err != nil {
		RespondFault(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
