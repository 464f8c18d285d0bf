// Package metrics holds the Prometheus collectors of the API process.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// VotesCast counts stored votes by subject kind and resulting value.
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_votes_cast_total",
		Help: "Votes stored, by subject kind and resulting value",
	}, []string{"subject_kind", "value"})

	// CacheLookups counts cache-aside reads by outcome (hit, miss or error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_cache_lookups_total",
		Help: "Cache lookups by outcome",
	}, []string{"outcome"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agora_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// RecordVote counts a stored vote. value is -1, 0 or 1.
func RecordVote(kind string, value int) {
	label := "none"
	switch value {
	case 1:
		label = "up"
	case -1:
		label = "down"
	}
	VotesCast.WithLabelValues(kind, label).Inc()
}

// Middleware observes request latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
