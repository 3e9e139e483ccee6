package bacnet

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "bacnet_test")
	require.NotNil(t, m)

	m.RequestsSent.Inc()
	m.RequestsSucceeded.Inc()
	m.BytesSent.Add(42)
	m.DevicesDiscovered.Set(3)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewMetrics_NilRegistererSkipsRegistration(t *testing.T) {
	m := NewMetrics(nil, "bacnet_unregistered")
	require.NotNil(t, m)
	m.RequestsFailed.Inc() // must not panic without a registry
}
