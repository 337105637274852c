package httpapi

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(recoveryMiddleware(s.logger))
	r.Use(requestIDMiddleware())
	r.Use(loggerMiddleware(s.logger, s.deps.Metrics))

	r.GET("/health", s.handleHealth)
	if s.deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}
	r.GET(s.deps.Store.Ref(), s.handleAudio)

	api := r.Group("/api")
	if s.cfg.Server.RateLimit > 0 {
		api.Use(rateLimitMiddleware(s.cfg.Server.RateLimit, s.cfg.Server.RateBurst, s.deps.Metrics))
	}
	api.POST("/summary", s.handleSummary)
	api.POST("/summary/docx", s.handleSummaryDocx)
	api.POST("/tts", s.handleTTS)
	api.POST("/extract", s.handleExtract)
	api.POST("/process", s.handleProcess)
}
