package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/MoetezAbbassi/mealscan/config"
	"github.com/MoetezAbbassi/mealscan/internal/api"
	"github.com/MoetezAbbassi/mealscan/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// Add CORS middleware
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.ExposeHeaders = append(corsConfig.ExposeHeaders,
		"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := api.SetupAPI(router, cfg); err != nil {
		return nil, err
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    ":" + cfg.ServerPort,
			Handler: middleware.ErrorHandler(router),
		},
		config: cfg,
	}, nil
}

// Start begins serving HTTP requests and blocks until the server is
// shut down
func (s *Server) Start() error {
	log.Printf("[Server] listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
