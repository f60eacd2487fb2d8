package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/circleshare/service-sharing/internal/application"
	"github.com/circleshare/service-sharing/internal/config"
	"github.com/circleshare/service-sharing/internal/events"
	"github.com/circleshare/service-sharing/internal/handler"
	"github.com/circleshare/service-sharing/internal/pkg/database"
	"github.com/circleshare/service-sharing/internal/pkg/health"
	"github.com/circleshare/service-sharing/internal/pkg/kafka"
	"github.com/circleshare/service-sharing/internal/pkg/logger"
	"github.com/circleshare/service-sharing/internal/pkg/middleware"
	"github.com/circleshare/service-sharing/internal/repository"
)

const serviceName = "service-sharing"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		err = db.AutoMigrate(
			&repository.UserModel{},
			&repository.ItemModel{},
			&repository.ItemRequestModel{},
			&repository.BookingModel{},
			&repository.CommentModel{},
		)
		if err != nil {
			log.Fatal("failed to auto-migrate schema", zap.Error(err))
		}
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close() //nolint:errcheck

	bookingRepo := repository.NewGormBookingRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)

	userService := application.NewUserService(userRepo, log)
	itemService := application.NewItemService(itemRepo, userRepo, bookingRepo, log)
	bookingService := application.NewBookingService(bookingRepo, itemRepo, userRepo, producer, log)
	requestService := application.NewRequestService(requestRepo, itemRepo, userRepo, log)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.MetricsMiddleware())

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rateLimit, err := middleware.RateLimit(redisClient, cfg.RateLimit)
		if err != nil {
			log.Fatal("failed to build rate limiter", zap.Error(err))
		}
		r.Use(rateLimit)
	}

	r.GET("/metrics", middleware.MetricsHandler())
	health.NewHandler(db, serviceName).RegisterRoutes(r)

	api := r.Group("/api/v1")
	handler.NewUserHandler(userService).RegisterRoutes(api)
	handler.NewItemHandler(itemService).RegisterRoutes(api)
	handler.NewBookingHandler(bookingService).RegisterRoutes(api)
	handler.NewRequestHandler(requestService).RegisterRoutes(api)
	handler.NewAdminHandler(bookingService).RegisterRoutes(api)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userConsumer := events.NewUserEventConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupPrefix+serviceName,
		userService,
		log,
	)
	defer userConsumer.Close() //nolint:errcheck
	go func() {
		if err := userConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("user event consumer stopped", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
