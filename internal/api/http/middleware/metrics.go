package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/metrics"
)

// Metrics 指标收集中间件
// 收集API性能指标，用于监控和告警
type Metrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestSize     *prometheus.SummaryVec
}

// NewMetrics 创建指标中间件，reg 为 nil 时只计数不注册
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		requestCounter: metrics.Register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metrics.Namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		)),
		requestDuration: metrics.Register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metrics.Namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route"},
		)),
		requestSize: metrics.Register(reg, prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace:  metrics.Namespace,
				Subsystem:  "api",
				Name:       "request_size_bytes",
				Help:       "API request size in bytes",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"method", "route"},
		)),
	}
}

// Middleware 返回Gin中间件
//
// 按路由模板（如 /v1/accounts/:address）聚合，未匹配路由记为 "unmatched"。
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		if size := c.Request.ContentLength; size > 0 {
			defer func() {
				m.requestSize.WithLabelValues(method, route(c)).Observe(float64(size))
			}()
		}

		c.Next()

		r := route(c)
		m.requestCounter.WithLabelValues(method, r, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(method, r).Observe(time.Since(start).Seconds())
	}
}

func route(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}
