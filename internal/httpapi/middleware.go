package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
	"github.com/nguyentantai21042004/audio-tutor/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// recoveryMiddleware turns panics into a 500 and logs them.
func recoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "Panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	})
}

// requestIDMiddleware propagates or assigns X-Request-ID and tags the
// request context so log lines carry it.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// loggerMiddleware logs one line per request and records request metrics.
func loggerMiddleware(log logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		if m != nil {
			m.ObserveRequest(route, strconv.Itoa(status), duration)
		}

		ctx := c.Request.Context()
		if len(c.Errors) > 0 {
			log.Error(ctx, "%s %s %d %s errors=%s", c.Request.Method, path, status, duration, strings.Join(c.Errors.Errors(), "; "))
			return
		}
		if strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/metrics") {
			log.Debug(ctx, "%s %s %d %s", c.Request.Method, path, status, duration)
			return
		}
		log.Info(ctx, "%s %s %d %s %s", c.Request.Method, path, status, duration, c.ClientIP())
	}
}

// rateLimitMiddleware applies one shared token bucket to every request in
// the group.
func rateLimitMiddleware(rps float64, burst int, m *metrics.Metrics) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			if m != nil {
				m.RateLimited.Inc()
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
			return
		}
		c.Next()
	}
}
