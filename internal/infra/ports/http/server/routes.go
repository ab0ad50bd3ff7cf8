package server

import (
	"github.com/labstack/echo/v4"

	"github.com/stuchat/backend/internal/application/config"
	"github.com/stuchat/backend/internal/infra/ports/http/handlers"
	"github.com/stuchat/backend/internal/infra/ports/http/middleware"
)

func New(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	presenceHandler *handlers.PresenceHandler,
	notificationHandler *handlers.NotificationHandler,
	callLogHandler *handlers.CallLogHandler,
	iceHandler *handlers.IceHandler,
	wsHandler *handlers.WebSocketHandler,
) *echo.Echo {
	e := echo.New()

	e.Use(middleware.SlogLogger())
	e.Use(middleware.PrometheusMiddleware())

	// Идентичность realtime-соединения объявляется самим клиентом
	// через user_online, поэтому /ws не прячется за JWT
	e.GET("/ws", wsHandler.Serve)

	api := e.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		v1 := api.Group("/v1")
		v1.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		{
			v1.GET("/me", authHandler.GetMe)

			v1.GET("/ice", iceHandler.IceServers)

			v1.GET("/users/online", presenceHandler.GetOnlineUsers)

			v1.GET("/notifications", notificationHandler.List)
			v1.GET("/notifications/unread", notificationHandler.UnreadCount)
			v1.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			v1.PUT("/notifications/read-all", notificationHandler.MarkAllRead)

			v1.POST("/calls", callLogHandler.Initiate)
			v1.PUT("/calls/:id/answer", callLogHandler.Answer)
			v1.PUT("/calls/:id/reject", callLogHandler.Reject)
			v1.PUT("/calls/:id/end", callLogHandler.End)
			v1.GET("/calls", callLogHandler.History)
		}
	}

	return e
}
