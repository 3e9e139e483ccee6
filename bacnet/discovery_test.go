package bacnet

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiscover_RoundTrip runs a stub responder on loopback that answers
// every probe with the canonical vendor-516 broadcast, mimicking a
// Flexit unit, and checks that Discover reports its address.
func TestDiscover_RoundTrip(t *testing.T) {
	addr, err := net.ResolveUDPAddr("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	responderConn, err := net.ListenUDP("udp4", addr)
	require.NoError(t, err)
	defer responderConn.Close()

	response := []byte{0x10, 0x04}
	response = ctxTag(response, 0, 1)
	response = append(response, vendorIDSiemens)
	response = ctxTag(response, 1, 2)
	response = append(response, 0x02, 0x04)
	response = append(response, make([]byte, discoveryBlobLen)...)
	frame := buildFrame(bvlcFunctionBroadcast, npduControlNoReply, response)

	done := make(chan struct{})
	defer close(done)
	go func() {
		buf := make([]byte, 1500)
		for {
			responderConn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, from, err := responderConn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			responderConn.WriteToUDP(frame, from)
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	localAddr := responderConn.LocalAddr().(*net.UDPAddr)
	ips, err := Discover(context.Background(), nil, nil,
		WithDiscoverTimeout(500*time.Millisecond),
		WithBroadcastAddress(localAddr.String()),
	)
	require.NoError(t, err)
	assert.Contains(t, ips, "127.0.0.1")
}
