// Package main runs the webinar portal HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aura-webinar/portal/config"
	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/backend"
	"github.com/aura-webinar/portal/internal/catalog"
	"github.com/aura-webinar/portal/internal/middleware"
	"github.com/aura-webinar/portal/internal/payments"
	"github.com/aura-webinar/portal/internal/profile"
	"github.com/aura-webinar/portal/internal/registrations"
	"github.com/aura-webinar/portal/internal/webinars"
	"github.com/aura-webinar/portal/pkg/database"
	"github.com/aura-webinar/portal/pkg/redis"
	"github.com/aura-webinar/portal/pkg/response"
	"github.com/aura-webinar/portal/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("timezone", zap.Error(err))
	}

	ctx := context.Background()
	client := backend.NewClient(cfg.Backend.BaseURL,
		backend.WithTimeout(cfg.Backend.Timeout()),
		backend.WithRateLimit(cfg.Backend.RateLimit),
		backend.WithLogger(logger.Named("backend")),
	)

	var store catalog.Store = client
	if cfg.Catalog.Source == config.CatalogPostgres {
		pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns, logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
		store = catalog.NewPostgres(pool)
	}
	logger.Info("catalog source", zap.String("source", cfg.Catalog.Source))

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var avatars profile.AvatarStore
	if cfg.AWS.Region != "" && cfg.AWS.AvatarsBucket != "" {
		s3Client, err := storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			AvatarsBucket:   cfg.AWS.AvatarsBucket,
		}, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		} else {
			avatars = s3Client
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	cookie := auth.Cookie{Name: cfg.Session.CookieName, Domain: cfg.Session.Domain, Secure: cfg.Session.Secure}

	regService := registrations.NewService(store, registrations.NewRedisSnapshots(rdb.Client, cfg.Redis.SnapshotTTL()), logger)
	registrationHandler := registrations.NewHandler(regService, store, logger)
	webinarHandler := webinars.NewHandler(store, loc, logger)
	paymentHandler := payments.NewHandler(store, regService, client, payments.Keys{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
	}, logger)
	profileHandler := profile.NewHandler(client, avatars, regService, cookie, logger)
	sessionHandler := profile.NewSessionHandler(client, jwtService, regService, cookie, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Session(jwtService, cfg.Session.CookieName))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	api := router.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", sessionHandler.Login)
		authGroup.POST("/signup", sessionHandler.Signup)
		authGroup.POST("/logout", sessionHandler.Logout)
	}

	// Catalog (public; intent answers require_login for visitors)
	api.GET("/webinars", webinarHandler.List)
	api.GET("/webinars/:id", webinarHandler.GetByID)
	api.GET("/webinars/:id/intent", registrationHandler.Intent)

	// Signed-in user
	private := api.Group("")
	private.Use(middleware.RequireAuth())
	{
		private.POST("/webinars/:id/checkout", paymentHandler.Checkout)
		private.POST("/payments/verify", paymentHandler.Verify)

		private.GET("/user/registrations", registrationHandler.List)
		private.POST("/user/registrations/:id", registrationHandler.Register)

		private.GET("/user", profileHandler.Get)
		private.PUT("/user", profileHandler.Update)
		private.DELETE("/user", profileHandler.Delete)
		private.POST("/uploads", profileHandler.UploadAvatar)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
