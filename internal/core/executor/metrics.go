package executor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/metrics"
)

// executorMetrics 调用级指标
type executorMetrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	transfers   *prometheus.CounterVec
}

func newExecutorMetrics(reg prometheus.Registerer) *executorMetrics {
	return &executorMetrics{
		invocations: metrics.Register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metrics.Namespace,
				Subsystem: "executor",
				Name:      "invocations_total",
				Help:      "Total number of contract invocations by function and outcome",
			},
			[]string{"function", "outcome"},
		)),
		duration: metrics.Register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metrics.Namespace,
				Subsystem: "executor",
				Name:      "invocation_duration_seconds",
				Help:      "Contract invocation duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms ~ 4s
			},
			[]string{"function", "outcome"},
		)),
		transfers: metrics.Register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metrics.Namespace,
				Subsystem: "executor",
				Name:      "transfers_total",
				Help:      "Total number of transfers requested by contracts by result",
			},
			[]string{"result"}, // success, failed
		)),
	}
}

func (m *executorMetrics) observe(res *Result) {
	m.invocations.WithLabelValues(res.Function, string(res.Outcome)).Inc()
	m.duration.WithLabelValues(res.Function, string(res.Outcome)).Observe(res.Duration.Seconds())
	for _, t := range res.Transfers {
		if t.Result < 0 {
			m.transfers.WithLabelValues("failed").Inc()
		} else {
			m.transfers.WithLabelValues("success").Inc()
		}
	}
}
