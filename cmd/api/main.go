package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"estagio/internal/app"
	"estagio/internal/config"
	"estagio/internal/database"
	apphttp "estagio/internal/http"
	"estagio/internal/http/handlers"
	"estagio/internal/http/metrics"
	httpmw "estagio/internal/http/middleware"
	"estagio/internal/http/response"
	"estagio/internal/observability"
	"estagio/internal/repository/postgres"
	"estagio/internal/security"
	"estagio/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db, err := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	}, logger)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	fileStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	postingRepo := postgres.NewPostingRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret, cfg.TokenTTL)

	authService := app.NewAuthService(userRepo, jwtProvider, logger)
	userService := app.NewUserService(userRepo, documentRepo)
	postingService := app.NewPostingService(postingRepo, userRepo, logger)
	applicationService := app.NewApplicationService(applicationRepo, postingRepo, documentRepo, userRepo, logger, cfg.AllowStatusOverride)
	documentService := app.NewDocumentService(documentRepo, fileStore, logger)
	notificationService := app.NewNotificationService(notificationRepo, userRepo, logger)

	limiter := buildLimiter(cfg, logger)
	authHandler := handlers.NewAuthHandler(authService, limiter)
	userHandler := handlers.NewUserHandler(userService)
	postingHandler := handlers.NewPostingHandler(postingService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, limiter)
	documentHandler := handlers.NewDocumentHandler(documentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		PostingHandler:      postingHandler,
		ApplicationHandler:  applicationHandler,
		DocumentHandler:     documentHandler,
		NotificationHandler: notificationHandler,
		MetricsHandler:      handlers.NewMetricsHandler(collector),
		AuthMiddleware:      authMiddleware,
		Metrics:             collector,
		RequestTimeout:      cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

// buildLimiter prefers Redis so the limit holds across replicas, falling back
// to the in-process limiter when REDIS_URL is unset.
func buildLimiter(cfg *config.Config, logger *observability.Logger) httpmw.Limiter {
	if cfg.RedisURL == "" {
		return httpmw.NewRateLimiter()
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid REDIS_URL, using in-memory rate limiter: " + err.Error())
		return httpmw.NewRateLimiter()
	}
	return httpmw.NewRedisLimiter(redis.NewClient(opts))
}
