package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/paulmaker/office-mgmt/internal/application/billing"
	"github.com/paulmaker/office-mgmt/internal/application/document"
	identityapp "github.com/paulmaker/office-mgmt/internal/application/identity"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/auth"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/config"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/logger"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/persistence"
	"github.com/paulmaker/office-mgmt/internal/infrastructure/storage"
	"github.com/paulmaker/office-mgmt/internal/interfaces/http/handler"
	"github.com/paulmaker/office-mgmt/internal/interfaces/http/middleware"
	"github.com/paulmaker/office-mgmt/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting office management backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	entityRepo := persistence.NewGormEntityRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	invoiceCodeRepo := persistence.NewGormInvoiceCodeRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		// Token revocation degrades to process-local state without Redis.
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
	}

	// Object storage
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			log.Warn("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, entityRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, entityRepo, log)
	entityService := identityapp.NewEntityService(entityRepo, accountRepo)
	clientService := billingapp.NewClientService(clientRepo, entityRepo)
	numberService := billingapp.NewNumberService(clientRepo, invoiceCodeRepo, entityRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, entityRepo, numberService)
	fileService := document.NewFileService(objectStorage, document.FileServiceConfig{
		UploadURLTTL:   cfg.Storage.UploadURLTTL,
		DownloadURLTTL: cfg.Storage.DownloadURLTTL,
	}, log)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg)))

	authMiddleware := middleware.Auth(middleware.AuthConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	authHandler := handler.NewAuthHandler(authService, cfg.JWT.RefreshTokenExpiration)

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuthMiddleware(authMiddleware),
	)
	r.RegisterPublic(router.RegisterFunc(authHandler.RegisterPublicRoutes))
	r.Register(authHandler).
		Register(handler.NewEntityHandler(entityService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewNumberHandler(numberService)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewFileHandler(fileService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
