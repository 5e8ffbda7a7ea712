package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// HeaderRequestID carries the request id in both directions.
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID is the key for the request id in gin context.
	ContextRequestID = "request_id"
)

// RequestID reuses the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Logger returns a zap-based request logging middleware.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		clientIP := c.ClientIP()
		method := c.Request.Method

		c.Next()

		statusCode := c.Writer.Status()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.Duration("latency", latency),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("client_ip", clientIP),
			zap.String("request_id", c.GetString(ContextRequestID)),
		}
		if p, ok := PrincipalFrom(c); ok && p.Authenticated() {
			fields = append(fields, zap.Int64("user_id", p.UserID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case statusCode >= 500:
			logger.Error("request", fields...)
		case statusCode >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
