package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/drexwrld/synapes-backend/middlewares"
	"github.com/drexwrld/synapes-backend/services"
	"github.com/drexwrld/synapes-backend/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(n *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: n}
}

func (nc *NotificationController) List(c *gin.Context) {
	list, err := nc.Notifications.List(middlewares.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, list)
}

func (nc *NotificationController) UnreadCount(c *gin.Context) {
	count, err := nc.Notifications.UnreadCount(middlewares.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"unread": count})
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.Fail(c, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := nc.Notifications.MarkRead(middlewares.CurrentUserID(c), uint(id)); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"read": true})
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	if err := nc.Notifications.MarkAllRead(middlewares.CurrentUserID(c)); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"read": true})
}

func (nc *NotificationController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.Fail(c, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := nc.Notifications.Delete(middlewares.CurrentUserID(c), uint(id)); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"deleted": true})
}
