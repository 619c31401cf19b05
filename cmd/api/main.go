package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httphandlers "github.com/rafabene/ciaopet-backend/internal/handlers/http"
	"github.com/rafabene/ciaopet-backend/internal/handlers/middleware"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/auth"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/config"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/i18n"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/logging"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/ciaopet-backend/internal/services"
	"github.com/rafabene/ciaopet-backend/internal/validation"
)

// @title CiaoPet API
// @version 1.0
// @description Cadastro de pets e tutores com autenticação por bearer token.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting ciaopet backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", "error", err)
		log.Fatal(err)
	}
	defer sqlDB.Close()

	if cfg.Database.RunMigrations {
		if err := postgres.RunMigrations(context.Background(), db, logger); err != nil {
			logger.Error("failed to run migrations", "error", err)
			log.Fatal(err)
		}
	}

	// Inicializar i18n
	i18nService, err := i18n.NewEmbeddedService(cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewAccessTokenRepository(db)
	petRepo := postgres.NewPetRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	authService := services.NewAuthService(userRepo, tokenRepo, issuer, uow, logger)
	petService := services.NewPetService(petRepo, logger)
	petValidator := validation.NewPetValidator(petRepo, userRepo)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Env:            cfg.Env,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.Origins(),
		I18n:           i18nService,
		Auth:           middleware.NewAuthMiddleware(authService, logger),
		Pets:           httphandlers.NewPetHandler(petService, petValidator, logger),
		Users:          httphandlers.NewAuthHandler(authService, logger),
		Database:       sqlDB,
		Logger:         logger,
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
