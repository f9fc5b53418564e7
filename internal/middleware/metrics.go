package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var requestTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cdf_tracker_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

//nolint:gochecknoinits // Collector registration happens once at package load.
func init() {
	prometheus.MustRegister(requestTotal)
}

// Metrics counts every handled request. The route label uses the gin route
// template, not the raw path, to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
