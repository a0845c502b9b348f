package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"revebot.backend/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counters and latency per route. The
// route template (not the raw path) is used to keep label cardinality down.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
