package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/drexwrld/synapes-backend/middlewares"
	"github.com/drexwrld/synapes-backend/services"
	"github.com/drexwrld/synapes-backend/utils"
)

type ClassController struct {
	Classes  *services.ClassService
	Notifier *services.NotificationService
}

func NewClassController(classes *services.ClassService, notifier *services.NotificationService) *ClassController {
	return &ClassController{Classes: classes, Notifier: notifier}
}

func classID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.Fail(c, http.StatusBadRequest, "invalid class id")
		return 0, false
	}
	return uint(id), true
}

// --- head-of-class surface ---

func (cc *ClassController) Create(c *gin.Context) {
	var input services.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	class, err := cc.Classes.Create(middlewares.CurrentUserID(c), input)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, class)
}

func (cc *ClassController) ListOwned(c *gin.Context) {
	classes, err := cc.Classes.ListOwned(middlewares.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, classes)
}

func (cc *ClassController) GetOwned(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}
	class, err := cc.Classes.GetOwned(middlewares.CurrentUserID(c), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, class)
}

func (cc *ClassController) Update(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}
	var input services.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	class, err := cc.Classes.Update(middlewares.CurrentUserID(c), id, input)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, class)
}

func (cc *ClassController) Reschedule(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}
	var input services.RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	class, err := cc.Classes.Reschedule(middlewares.CurrentUserID(c), id, input)
	if err != nil {
		serviceError(c, err)
		return
	}

	body := fmt.Sprintf("%s now starts at %s", class.Title, class.StartsAt.Format("Mon 2 Jan 15:04"))
	if _, err := cc.Notifier.NotifyClassStudents(c.Request.Context(), class, "Class rescheduled", body); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, class)
}

func (cc *ClassController) Cancel(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}

	class, err := cc.Classes.Cancel(middlewares.CurrentUserID(c), id)
	if err != nil {
		serviceError(c, err)
		return
	}

	body := fmt.Sprintf("%s on %s has been cancelled", class.Title, class.StartsAt.Format("Mon 2 Jan"))
	if _, err := cc.Notifier.NotifyClassStudents(c.Request.Context(), class, "Class cancelled", body); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, class)
}

func (cc *ClassController) Complete(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}

	class, err := cc.Classes.Complete(middlewares.CurrentUserID(c), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, class)
}

type broadcastInput struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (cc *ClassController) Broadcast(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}
	var input broadcastInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	class, err := cc.Classes.GetOwned(middlewares.CurrentUserID(c), id)
	if err != nil {
		serviceError(c, err)
		return
	}

	sent, err := cc.Notifier.NotifyClassStudents(c.Request.Context(), class, input.Title, input.Body)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"recipients": sent})
}

// --- student surface ---

func (cc *ClassController) ListEnrolled(c *gin.Context) {
	classes, err := cc.Classes.ListEnrolled(middlewares.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, classes)
}

func (cc *ClassController) Enroll(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}
	if err := cc.Classes.Enroll(middlewares.CurrentUserID(c), id); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, gin.H{"class_id": id})
}

func (cc *ClassController) Unenroll(c *gin.Context) {
	id, ok := classID(c)
	if !ok {
		return
	}
	if err := cc.Classes.Unenroll(middlewares.CurrentUserID(c), id); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"class_id": id})
}
