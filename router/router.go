package router

import (
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"github.com/famly-app/family-reminder/config"
	"github.com/famly-app/family-reminder/controllers"
	"github.com/famly-app/family-reminder/middlewares"
	"github.com/famly-app/family-reminder/services"
)

func SetupRouter(db *gorm.DB, reminders *services.ReminderService, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.AllowedOrigin))
	r.Use(middlewares.LoggerMiddleware())
	// 50 requests per second per IP. Must be registered before the routes,
	// gin snapshots each route's handler chain at registration time.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	eventCtrl := controllers.NewEventController(db, reminders, cfg.EditPolicy)
	notificationCtrl := controllers.NewNotificationController(db, reminders)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Rate limiter for login/register
	public := api.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)

		// EVENTS (shared family calendar)
		auth.GET("/events", eventCtrl.GetAllEvents)
		auth.POST("/events", eventCtrl.CreateEvent)
		auth.PUT("/events/:event_id", eventCtrl.UpdateEvent)
		auth.DELETE("/events/:event_id", eventCtrl.DeleteEvent)
		auth.GET("/upcoming-events", eventCtrl.GetUpcomingEvents)

		// NOTIFICATIONS
		auth.GET("/notifications", notificationCtrl.GetNotifications)
		auth.GET("/notifications/unread-count", notificationCtrl.GetUnreadCount)
		auth.PUT("/notifications/mark-all-read", notificationCtrl.MarkAllAsRead)
		auth.PUT("/notifications/read/:notif_id", notificationCtrl.MarkAsRead)
		auth.POST("/notifications/generate", notificationCtrl.TriggerReminders)

		// ADMIN
		admin := auth.Group("/admin")
		admin.Use(middlewares.AdminOnly())
		{
			admin.DELETE("/events/:event_id", eventCtrl.AdminDeleteEvent)
		}
	}

	return r
}
