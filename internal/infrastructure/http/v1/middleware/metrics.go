package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bakehouse/internal/observability"
)

// Metrics middleware records per-request Prometheus metrics. The route
// template (":id" instead of the raw value) keeps label cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		observability.HTTPRequestsTotal.
			WithLabelValues(c.Request.Method, path, status).
			Inc()
		observability.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
