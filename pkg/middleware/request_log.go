package middleware

import (
	"strconv"
	"time"

	"github.com/candies-app/candies/pkg/logger"
	"github.com/candies-app/candies/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request and records request metrics.
// Format: METHOD path status latency - bytes
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		logger.Infof("%s %s %d %.3f ms - %d", c.Request.Method, c.Request.URL.Path, status,
			float64(latency.Microseconds())/1000, c.Writer.Size())
	}
}
