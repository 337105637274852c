package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/audio-tutor/internal/audiostore"
	"github.com/nguyentantai21042004/audio-tutor/internal/config"
	"github.com/nguyentantai21042004/audio-tutor/internal/extractor"
	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
	"github.com/nguyentantai21042004/audio-tutor/internal/metrics"
	"github.com/nguyentantai21042004/audio-tutor/internal/processor"
	"github.com/nguyentantai21042004/audio-tutor/internal/speech"
	"github.com/nguyentantai21042004/audio-tutor/internal/summarizer"
)

// Deps are the components the HTTP API exposes.
type Deps struct {
	Extractor  extractor.Extractor
	Speaker    speech.Speaker
	Summarizer summarizer.Summarizer
	Processor  processor.Processor
	Store      audiostore.Store
	Metrics    *metrics.Metrics
}

// Server is the HTTP front of the service.
type Server struct {
	cfg    *config.Config
	deps   Deps
	logger logger.Logger
	router *gin.Engine
	server *http.Server
}

// New builds the router and the http.Server around it.
func New(cfg *config.Config, deps Deps, log logger.Logger) *Server {
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: log,
		router: gin.New(),
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Router returns the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info(ctx, "HTTP server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
