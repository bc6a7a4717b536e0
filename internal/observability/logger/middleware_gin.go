package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MiddlewareConfig controls request logging behavior.
type MiddlewareConfig struct {
	Debug bool
}

// GinMiddleware logs each request with correlation identifiers and safe fields.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := ensureRequestID(c)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}

		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, zap.String("error", lastErr.Err.Error()))
			if cfg.Debug {
				fields = append(fields, zap.Stack("stack"))
			}
		}

		logRequest(zap.L(), route, status, fields)
	}
}

func ensureRequestID(c *gin.Context) string {
	requestID := strings.TrimSpace(c.GetHeader("X-Request-Id"))
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.Set("request_id", requestID)
	c.Header("X-Request-Id", requestID)
	return requestID
}

func logRequest(log *zap.Logger, route string, status int, fields []zap.Field) {
	if log == nil {
		return
	}

	level := zap.InfoLevel
	if status >= http.StatusInternalServerError {
		level = zap.ErrorLevel
	}
	if strings.EqualFold(strings.TrimSpace(route), "/metrics") {
		level = zap.DebugLevel
	}

	switch level {
	case zap.DebugLevel:
		log.Debug("http_request", fields...)
	case zap.ErrorLevel:
		log.Error("http_request", fields...)
	default:
		log.Info("http_request", fields...)
	}
}
