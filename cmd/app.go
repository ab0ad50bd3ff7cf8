package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/stuchat/backend/internal/application/config"
	"github.com/stuchat/backend/internal/application/constant"
	"github.com/stuchat/backend/internal/application/metric"
	"github.com/stuchat/backend/internal/infra/adapters/memory"
	"github.com/stuchat/backend/internal/infra/adapters/postgres"
	"github.com/stuchat/backend/internal/infra/adapters/postgres/repository"
	"github.com/stuchat/backend/internal/infra/ports/http/handlers"
	"github.com/stuchat/backend/internal/infra/ports/http/server"
	"github.com/stuchat/backend/internal/usecase"
)

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: slog.LevelInfo},
			),
		),
	)

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
	if err != nil {
		slog.Error("connect to postgres", slog.Any(constant.Error, err))
		os.Exit(1)
	}
	defer dbConn.Close()

	userRepo := repository.NewUserRepo(dbConn)
	notificationRepo := repository.NewNotificationRepo(dbConn)
	callLogRepo := repository.NewCallLogRepo(dbConn)

	registry := memory.NewConnectionRegistry()
	rooms := memory.NewRoomRepository()
	callRooms := memory.NewCallRoomRepository()

	userUsecase := usecase.NewUserUsecase([]byte(cfg.JWTSecret), userRepo)
	presenceUsecase := usecase.NewPresenceUsecase(registry, rooms)
	notificationUsecase := usecase.NewNotificationUsecase(registry, notificationRepo)
	signalingUsecase := usecase.NewSignalingUsecase(registry, rooms, callRooms)

	authHandler := handlers.NewAuthHandler(userUsecase)
	presenceHandler := handlers.NewPresenceHandler(presenceUsecase)
	notificationHandler := handlers.NewNotificationHandler(notificationUsecase)
	callLogHandler := handlers.NewCallLogHandler(callLogRepo)
	iceHandler := handlers.NewIceHandler(cfg)
	wsHandler := handlers.NewWebSocketHandler(cfg, presenceUsecase, signalingUsecase, notificationUsecase)

	echoSrv := server.New(cfg, authHandler, presenceHandler, notificationHandler, callLogHandler, iceHandler, wsHandler)

	metricsSrv := metric.NewServer()

	echoSrvCh := make(chan error, 1)
	metricsSrvCh := make(chan error, 1)

	// Запускаем HTTP сервер
	go func() {
		echoSrvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	// Запускаем сервер метрик
	go func() {
		metricsSrvCh <- metricsSrv.Start(":" + cfg.MetricPort)
	}()

	// Ожидаем сигнал завершения или ошибку сервера
	select {
	case <-ctx.Done():
		slog.Info("Shutting down servers due to context cancel")
	case err := <-echoSrvCh:
		slog.Error(
			"HTTP server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	case err := <-metricsSrvCh:
		slog.Error(
			"Metrics server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	}

	// Graceful shutdown
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown HTTP server", slog.Any(constant.Error, err))
	}

	if err := metricsSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown metric server", slog.Any(constant.Error, err))
	}
}
