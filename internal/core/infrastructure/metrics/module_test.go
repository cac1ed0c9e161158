package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_GathersRuntimeMetrics(t *testing.T) {
	reg := NewRegistry()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}

func TestRegister_ReusesExistingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := prometheus.CounterOpts{Namespace: Namespace, Name: "reuse_total", Help: "test"}

	first := Register(reg, prometheus.NewCounter(opts))
	second := Register(reg, prometheus.NewCounter(opts))
	second.Inc()

	assert.Same(t, first, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(first))
}

func TestRegister_NilRegisterer(t *testing.T) {
	c := Register(nil, prometheus.NewCounter(prometheus.CounterOpts{Name: "unregistered_total", Help: "test"}))
	c.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(c))
}
