package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/ciaopet-backend/docs" // swagger docs
	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
	"github.com/rafabene/ciaopet-backend/internal/handlers/dto"
	"github.com/rafabene/ciaopet-backend/internal/handlers/middleware"
	"github.com/rafabene/ciaopet-backend/internal/infrastructure/i18n"
)

// Pinger verifica a conexão com o banco de dados
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig agrupa as dependências do roteador
type RouterConfig struct {
	Env            string
	BaseURL        string
	AllowedOrigins []string
	I18n           *i18n.Service
	Auth           *middleware.AuthMiddleware
	Pets           *PetHandler
	Users          *AuthHandler
	Database       Pinger
	Logger         ports.Logger
}

// NewRouter monta as rotas da API com os middlewares globais
func NewRouter(cfg RouterConfig) *gin.Engine {
	dto.UseJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger(cfg.Logger))

	// Middleware global para adicionar base URL ao contexto
	router.Use(middleware.BaseURL(cfg.BaseURL))

	// Middleware i18n
	router.Use(middleware.NewI18nMiddleware(cfg.I18n).DetectLanguage())

	// Middleware CORS
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", healthHandler(cfg.Env, cfg.Database))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", cfg.Users.Register)
			auth.POST("/login", cfg.Users.Login)

			protected := auth.Group("", cfg.Auth.RequireAuth())
			protected.POST("/logout", cfg.Users.Logout)
			protected.GET("/me", cfg.Users.Me)
		}

		pets := api.Group("/pets", cfg.Auth.RequireAuth())
		{
			pets.GET("", cfg.Pets.ListPets)
			pets.GET("/options", cfg.Pets.Options)
			pets.POST("", cfg.Pets.CreatePet)
			pets.GET("/:id", cfg.Pets.GetPet)
			pets.PUT("/:id", cfg.Pets.UpdatePet)
			pets.PATCH("/:id", cfg.Pets.UpdatePet)
			pets.DELETE("/:id", cfg.Pets.DeletePet)
			pets.POST("/:id/restore", cfg.Pets.RestorePet)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		dto.WriteError(c, dto.RouteNotFoundErrorResponseI18n(c))
	})

	return router
}

// healthHandler informa o ambiente e o estado do banco de dados
func healthHandler(env string, db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, database, code := "ok", "ok", http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				status, database, code = "degraded", "unavailable", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":   status,
			"env":      env,
			"database": database,
		})
	}
}
