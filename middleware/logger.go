package middleware

import (
	"time"

	"caseflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request and exposes the logger to handlers
// under the "logger" key.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		c.Set("logger", logger)
		start := time.Now()

		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)))
	}
}
