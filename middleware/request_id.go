package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	// LoggerKey holds the request-scoped *zap.Logger; controllers read it.
	LoggerKey = "logger"
)

// RequestID reuses the caller's X-Request-ID or generates one, echoes it on
// the response and stores a logger tagged with it.
func RequestID(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Set(LoggerKey, base.With(zap.String("request_id", id)))
		c.Next()
	}
}
