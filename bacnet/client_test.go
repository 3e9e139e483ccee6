package bacnet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ExchangeTimesOutAgainstUnreachablePeer(t *testing.T) {
	c := NewClient("127.0.0.1", 1, WithTimeout(200*time.Millisecond))

	start := time.Now()
	_, err := c.ReadPropertyMultiple([]PropertyDescriptor{DeviceObject(1)})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.Less(t, elapsed, 1500*time.Millisecond)
}

func TestClient_WritePropertyPropagatesTransportError(t *testing.T) {
	c := NewClient("127.0.0.1", 1, WithTimeout(200*time.Millisecond))
	err := c.WriteProperty(VentilationModeProp, UnsignedValue(3))
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
}
