package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/drexwrld/synapes-backend/middlewares"
	"github.com/drexwrld/synapes-backend/services"
	"github.com/drexwrld/synapes-backend/utils"
)

type UserController struct {
	Users    *services.UserService
	Uploader *utils.Uploader
}

func NewUserController(users *services.UserService, uploader *utils.Uploader) *UserController {
	return &UserController{Users: users, Uploader: uploader}
}

func (uc *UserController) Profile(c *gin.Context) {
	profile, err := uc.Users.Profile(middlewares.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, profile)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := uc.Users.UpdateProfile(middlewares.CurrentUserID(c), input)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, profile)
}

type avatarInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

func (uc *UserController) UploadAvatar(c *gin.Context) {
	var input avatarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	uid := middlewares.CurrentUserID(c)
	url, err := uc.Uploader.UploadBase64Image(c.Request.Context(), input.ImageBase64, "avatars")
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "could not process image")
		return
	}

	if err := uc.Users.SetAvatarURL(uid, url); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"avatar_url": url})
}

type toggleInput struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (uc *UserController) ToggleNotifications(c *gin.Context) {
	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := uc.Users.SetNotificationsEnabled(middlewares.CurrentUserID(c), *input.Enabled); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"enabled": *input.Enabled})
}

func (uc *UserController) EnableHOC(c *gin.Context) {
	uid := middlewares.CurrentUserID(c)
	if err := uc.Users.EnableHOC(uid); err != nil {
		serviceError(c, err)
		return
	}

	logrus.WithField("user_id", uid).Info("head-of-class role enabled")
	utils.Success(c, http.StatusOK, gin.H{"is_hoc": true})
}

func (uc *UserController) Dashboard(c *gin.Context) {
	dashboard, err := uc.Users.Dashboard(middlewares.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, dashboard)
}
