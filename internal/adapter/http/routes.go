package http

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/ports"
)

func RegisterRoutes(
	r *gin.Engine,
	users ports.UserDirectory,
	healthHandler *handlers.HealthHandler,
	taskHandler *handlers.TaskHandler,
	notificationHandler *handlers.NotificationHandler,
	statsHandler *handlers.StatsHandler,
) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
	}

	authed := api.Group("")
	authed.Use(middleware.ActorMiddleware(users))
	{
		authed.POST("/tasks", taskHandler.CreateTask)
		authed.GET("/tasks", taskHandler.ListTasks)
		authed.GET("/tasks/:id", taskHandler.GetTask)
		authed.PATCH("/tasks/:id", taskHandler.UpdateTask)
		authed.PUT("/tasks/:id/status", taskHandler.UpdateStatus)
		authed.PUT("/tasks/:id/assignee", taskHandler.Reassign)

		authed.GET("/users/:id/stats", statsHandler.GetUserStats)

		authed.GET("/notifications", notificationHandler.ListNotifications)
		authed.GET("/notifications/count", notificationHandler.UnreadCount)
		authed.POST("/notifications/:id/read", notificationHandler.MarkRead)
	}
}
