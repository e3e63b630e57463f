package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostsapi/hosts-api/pkg/logger"
)

// AccessLog writes one structured line per request once the handler chain is done.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        path,
			"status":      status,
			"size":        c.Writer.Size(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
			"request_id":  GetRequestID(c),
		}
		switch {
		case status >= 500:
			logger.Errorw("request", fields)
		case status >= 400:
			logger.Warnw("request", fields)
		default:
			logger.Infow("request", fields)
		}
	}
}
