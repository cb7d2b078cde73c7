package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per completed request.
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if status >= 500 {
			h.logger.Error("Completed request", attrs...)
			return
		}
		h.logger.Debug("Completed request", attrs...)
	}
}
