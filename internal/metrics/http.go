package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests that hit no registered route, so scanners probing
// random paths do not create a series per path.
const unmatchedRoute = "unmatched"

// HTTPMetricsMiddleware counts requests and observes their latency labelled by method,
// route pattern (for example /api/devices/:id/move) and status code.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	meter := meterProvider.Meter(namespace)

	requests, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("HTTP requests by method, route and status code"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return passthrough
	}

	durations, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return passthrough
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", routeLabel(c.FullPath())),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		ctx := c.Request.Context()
		requests.Add(ctx, 1, attrs)
		durations.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}

func passthrough(c *gin.Context) {
	c.Next()
}

func routeLabel(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}
