package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drexwrld/synapes-backend/services"
	"github.com/drexwrld/synapes-backend/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := ac.Auth.Register(input)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := ac.Auth.Login(input.Email, input.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"is_hoc":    user.IsHOC,
		},
	})
}

func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := ac.Auth.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		serviceError(c, err)
		return
	}

	// Same answer whether or not the account exists.
	utils.Success(c, http.StatusOK, gin.H{"message": "if the email exists, a reset code has been sent"})
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var input struct {
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := ac.Auth.ResetPassword(input.Code, input.NewPassword); err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"message": "password has been reset"})
}
