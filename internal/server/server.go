package server

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/gratitude-api/internal/database"
	"github.com/taiwoajasa245/gratitude-api/pkg/config"
)

type Server struct {
	port    string
	db      database.Service
	handler http.Handler
	cfg     *config.Config
	log     *zap.Logger
}

// NewServer constructs the app server with all dependencies injected.
func NewServer(db database.Service, cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	stats := db.Health()
	if stats["status"] != "up" {
		log.Warn("database health check failed", zap.Any("health", stats))
	} else {
		log.Info("database connection successful", zap.Any("health", stats))
	}

	s := &Server{
		port: cfg.Port,
		db:   db,
		cfg:  cfg,
		log:  log,
	}

	s.handler = s.RegisterRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
