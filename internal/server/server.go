package server

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/api"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/config"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/store"
)

// Server hosts the dashboard API.
type Server struct {
	router  *gin.Engine
	backend store.Backend
	api     *api.Handler
}

// NewServer builds the server and its table-store backend.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	backend, err := newBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store backend: %v", err)
	}

	apiHandler := api.NewHandler(cfg, backend)

	s := &Server{
		router:  gin.Default(),
		backend: backend,
		api:     apiHandler,
	}

	s.setupRoutes()

	return s
}

func newBackend(cfg *config.AppConfig) (store.Backend, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemory(), nil
	case "gsheets":
		return store.NewSheets(context.Background(), cfg.Store.SpreadsheetID)
	default:
		return store.NewSQLite(cfg.Store.DBPath)
	}
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}
}

// Run starts the HTTP listener.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the store backend.
func (s *Server) Close() error {
	return s.backend.Close()
}
