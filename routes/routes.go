package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/drexwrld/synapes-backend/config"
	"github.com/drexwrld/synapes-backend/controllers"
	"github.com/drexwrld/synapes-backend/middlewares"
	"github.com/drexwrld/synapes-backend/services"
	"github.com/drexwrld/synapes-backend/utils"
)

// Deps carries everything the router wires into handlers. Tests build
// it with in-memory stores and fake clients.
type Deps struct {
	Config        *config.Config
	DB            *gorm.DB
	Tokens        *utils.TokenService
	Auth          *services.AuthService
	Users         *services.UserService
	Classes       *services.ClassService
	Notifications *services.NotificationService
	Push          *services.PushService
	Hub           *services.RealtimeHub
	Uploader      *utils.Uploader
	Limiter       *middlewares.RateLimiter
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.CORS(d.Config.AllowedOrigins))

	authCtrl := controllers.NewAuthController(d.Auth)
	userCtrl := controllers.NewUserController(d.Users, d.Uploader)
	classCtrl := controllers.NewClassController(d.Classes, d.Notifications)
	notifCtrl := controllers.NewNotificationController(d.Notifications)
	deviceCtrl := controllers.NewDeviceController(d.Push)
	realtimeCtrl := controllers.NewRealtimeController(d.Hub)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public credential routes, rate limited per client IP.
	auth := r.Group("/auth")
	if d.Limiter != nil {
		auth.Use(middlewares.RateLimit(d.Limiter))
	}
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/forgot-password", authCtrl.ForgotPassword)
		auth.POST("/reset-password", authCtrl.ResetPassword)
	}

	authed := r.Group("/")
	authed.Use(middlewares.Authenticate(d.Tokens, d.DB))
	{
		user := authed.Group("/user")
		{
			user.GET("/profile", userCtrl.Profile)
			user.PUT("/profile", userCtrl.UpdateProfile)
			user.PUT("/avatar", userCtrl.UploadAvatar)
			user.POST("/notifications/toggle", userCtrl.ToggleNotifications)
			user.POST("/hoc/enable", userCtrl.EnableHOC)
			user.GET("/dashboard", userCtrl.Dashboard)
		}

		classes := authed.Group("/classes")
		{
			classes.GET("", classCtrl.ListEnrolled)
			classes.POST("/:id/enroll", classCtrl.Enroll)
			classes.DELETE("/:id/enroll", classCtrl.Unenroll)
		}

		hoc := authed.Group("/hoc/classes")
		hoc.Use(middlewares.RequireHOC())
		{
			hoc.POST("", classCtrl.Create)
			hoc.GET("", classCtrl.ListOwned)
			hoc.GET("/:id", classCtrl.GetOwned)
			hoc.PUT("/:id", classCtrl.Update)
			hoc.POST("/:id/reschedule", classCtrl.Reschedule)
			hoc.POST("/:id/cancel", classCtrl.Cancel)
			hoc.POST("/:id/complete", classCtrl.Complete)
			hoc.POST("/:id/broadcast", classCtrl.Broadcast)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", notifCtrl.List)
			notifications.GET("/unread", notifCtrl.UnreadCount)
			notifications.POST("/:id/read", notifCtrl.MarkRead)
			notifications.POST("/read-all", notifCtrl.MarkAllRead)
			notifications.DELETE("/:id", notifCtrl.Delete)
		}

		devices := authed.Group("/devices")
		{
			devices.POST("", deviceCtrl.Register)
			devices.DELETE("", deviceCtrl.Remove)
		}

		authed.GET("/ws", realtimeCtrl.NotificationsWS)
	}

	return r
}
