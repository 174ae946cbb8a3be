package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drexwrld/synapes-backend/middlewares"
	"github.com/drexwrld/synapes-backend/services"
	"github.com/drexwrld/synapes-backend/utils"
)

type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{Push: push}
}

func (dc *DeviceController) Register(c *gin.Context) {
	var input services.RegisterTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	tok, err := dc.Push.RegisterToken(c.Request.Context(), middlewares.CurrentUserID(c), input)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"platform": tok.Platform})
}

func (dc *DeviceController) Remove(c *gin.Context) {
	if err := dc.Push.RemoveToken(c.Request.Context(), middlewares.CurrentUserID(c)); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"removed": true})
}
