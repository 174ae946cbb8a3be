package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/drexwrld/synapes-backend/services"
	"github.com/drexwrld/synapes-backend/utils"
)

// serviceError maps service sentinels onto the HTTP surface. Anything
// unrecognized is a dependency failure: log the detail, return a
// generic 500.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrClassNotOpen),
		errors.Is(err, services.ErrClassFull),
		errors.Is(err, services.ErrAlreadyEnrolled):
		utils.Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNotEnrolled):
		utils.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrResetCodeInvalid):
		utils.Fail(c, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		utils.Fail(c, http.StatusInternalServerError, "internal server error")
	}
}
