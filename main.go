package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/sportvenue/booking-service/config"
	"github.com/sportvenue/booking-service/internal/handler"
	"github.com/sportvenue/booking-service/internal/middleware"
	"github.com/sportvenue/booking-service/internal/repository"
	"github.com/sportvenue/booking-service/internal/scheduler"
	"github.com/sportvenue/booking-service/internal/service"
	"github.com/sportvenue/booking-service/pkg/clock"
	"github.com/sportvenue/booking-service/pkg/database"
	"github.com/sportvenue/booking-service/pkg/logger"
	"github.com/sportvenue/booking-service/pkg/rabbitmq"
	"github.com/sportvenue/booking-service/pkg/token"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	// The broker is optional: without it, order/session events are simply
	// not published.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	clk := clock.Real{}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	configRepo := repository.NewConfigRepository(db)

	settingsSvc := service.NewSettingsService(configRepo)
	sessionSvc := service.NewSessionService(sessionRepo, templateRepo, clk, log)
	templateSvc := service.NewTemplateService(templateRepo)
	userSvc := service.NewUserService(userRepo, tokens, clk)

	var eventPublisher service.EventPublisher
	var schedPublisher scheduler.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
		schedPublisher = publisher
	}
	orderSvc := service.NewOrderService(orderRepo, sessionRepo, userRepo, settingsSvc, clk, eventPublisher, log)

	sched := scheduler.New(sessionSvc, clk, schedPublisher, log)
	sched.Start(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-service"})
	})

	handler.NewAuthHandler(userSvc).RegisterRoutes(e)
	handler.NewSessionHandler(sessionSvc).RegisterRoutes(e)
	handler.NewUserHandler(userSvc, orderSvc, settingsSvc).RegisterRoutes(e, tokens)
	handler.NewAdminHandler(orderSvc, sessionSvc, templateSvc).RegisterRoutes(e, tokens)
	handler.NewConfigHandler(settingsSvc).RegisterRoutes(e, tokens)

	go func() {
		log.Info("booking service starting", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatal("server start failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	log.Info("booking service stopped")
}
