package middleware

import (
	"strconv"
	"time"

	"talento_backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records per-route request counts and latency.
// Labels use the route template, not the raw path, to bound cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
