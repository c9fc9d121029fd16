package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"surface", "path", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"surface", "path", "method"},
	)
	rateLimitDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ratelimit_decisions_total", Help: "Rate limit decisions per policy"},
		[]string{"policy", "result"},
	)
	storeInUse = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "store_scope_in_use", Help: "Requests currently holding a store slot"},
	)
)

func init() {
	prometheus.MustRegister(httpReqTotal, httpLatency, rateLimitDecisions, storeInUse)
}

// Metrics 未命中路由的请求统一记为 "unmatched"，避免 path 标签基数失控
func Metrics(surface string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpReqTotal.WithLabelValues(surface, path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(surface, path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func recordDecision(policy string, allowed bool) {
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	rateLimitDecisions.WithLabelValues(policy, result).Inc()
}
