package server

import (
	"strconv"
	"time"

	"auction-engine/internal/metrics"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if code, ok := c.Get(helpers.ErrorCodeKey); ok {
		fields["error_code"] = code
	}
	utils.Info("HTTP Request", fields)
}

// MetricsMiddleware records request latency per route and counts API errors by code
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
		if code := c.GetString(helpers.ErrorCodeKey); code != "" {
			m.APIError(code)
		}
	}
}
