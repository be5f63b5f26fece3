package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessFunc reports per-dependency readiness.
type ReadinessFunc func() map[string]bool

// RegisterSystemRoutes registers /health and /ready. /ready answers 503 while
// any dependency reported by ready is false.
func RegisterSystemRoutes(r gin.IRouter, started time.Time, ready ReadinessFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		deps := ready()
		ok := true
		for _, v := range deps {
			if !v {
				ok = false
			}
		}
		uptime := time.Since(started).Truncate(time.Second).String()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
