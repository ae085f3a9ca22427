package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"zing-keeper/services"
)

/**
 * Gin middleware recording per-route request metrics
 * @description
 * - Counts requests and errors and records handling time
 * - Routes are labeled with the gin route pattern, not the raw path
 */
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		services.IncrementRequestCount(route)
		services.RecordRequestDuration(route, time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			services.IncrementErrorCount(route)
		}
	}
}
