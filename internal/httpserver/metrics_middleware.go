package httpserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mybudget/pkg/metrics"
)

// MetricsMiddleware records request duration per method, route and status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, status, time.Since(start))
	}
}
