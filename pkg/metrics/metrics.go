// Package metrics exposes Prometheus instruments for the API and the
// connection tester / query runner.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpStatusCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dbconnmanager_http_status_code_counter",
		Help: "The number of http status codes per route",
	}, []string{"route", "status_code"})

	connectionTestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dbconnmanager_connection_tests_total",
		Help: "The number of connection tests by database type and outcome",
	}, []string{"db_type", "status"})

	connectionTestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "dbconnmanager_connection_test_duration_seconds",
		Help: "The amount of time a connection test took",
	}, []string{"db_type"})

	queryRenderCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dbconnmanager_query_renders_total",
		Help: "The number of embedded query renders by database type and outcome",
	}, []string{"db_type", "outcome"})
)

// GinMiddleware counts response status codes per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpStatusCounter.With(prometheus.Labels{
			"route":       route,
			"status_code": strconv.Itoa(c.Writer.Status()),
		}).Inc()
	}
}

// ObserveConnectionTest records one connection test.
func ObserveConnectionTest(dbType, status string, elapsed time.Duration) {
	connectionTestCounter.WithLabelValues(dbType, status).Inc()
	connectionTestDuration.WithLabelValues(dbType).Observe(elapsed.Seconds())
}

// ObserveQueryRender records one embedded query render. outcome is "ok" or a short failure reason.
func ObserveQueryRender(dbType, outcome string) {
	queryRenderCounter.WithLabelValues(dbType, outcome).Inc()
}
