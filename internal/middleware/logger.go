package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader 请求ID头
const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware 日志中间件
func LoggerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
			"latency":    time.Since(start).String(),
			"length":     c.Writer.Size(),
		})

		if username, ok := GetUsername(c); ok {
			entry = entry.WithField("username", username)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("HTTP Request")
		case status >= 400:
			entry.Warn("HTTP Request")
		default:
			entry.Info("HTTP Request")
		}
	}
}
