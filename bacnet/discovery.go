// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bacnet

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flexit/flexit-bacnet/bacnet/internal/transport"
)

// discoveryBlobLen is the fixed length of the vendor-captured parameter
// payload (the design); preserved byte-for-byte regardless of any client tag
// appended after it.
const discoveryBlobLen = 100

// discoveryBlob is the opaque 100-octet payload captured from the
// vendor's mobile application. Its internal structure is undocumented
// (the design notes); this client never interprets it, only replays it.
var discoveryBlob = [discoveryBlobLen]byte{}

// Discover runs the broadcast-send/response-collect loop of the design and
// returns the set of responding peer IPs. opts defaults to a 2-second
// window against the global broadcast address.
func Discover(ctx context.Context, logger *slog.Logger, metrics *Metrics, opts ...DiscoverOption) ([]string, error) {
	o := defaultDiscoverOptions()
	for _, opt := range opts {
		opt(o)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil, "bacnet_discovery")
	}

	t, err := transport.ListenBroadcast(fmt.Sprintf(":%d", DefaultPort))
	if err != nil {
		return nil, newTransportError("listen", err)
	}
	defer t.Close()

	broadcastAddr, err := net.ResolveUDPAddr("udp4", o.broadcastAddr)
	if err != nil {
		return nil, newTransportError("resolve broadcast address", err)
	}

	request := buildDiscoveryRequest(o.clientTag)

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var mu sync.Mutex
	found := make(map[string]struct{})

	var wg sync.WaitGroup
	wg.Add(2)

	// Sender: emits one broadcast every broadcastInterval until cancelled.
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(o.broadcastInterval)
		defer ticker.Stop()
		for {
			if err := t.SendTo(broadcastAddr, request); err != nil {
				logger.Debug("bacnet: discovery broadcast failed", slog.Any("error", err))
			} else {
				metrics.DiscoveryRoundsSent.Inc()
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	// Receiver: dequeues datagrams until cancelled; cancellation is
	// normal termination, not an error (the concurrency model).
	go func() {
		defer wg.Done()
		for {
			data, addr, err := t.ReceiveFromCtx(ctx, 200*time.Millisecond)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Debug("bacnet: discovery receive error", slog.Any("error", err))
				continue
			}
			if !isDiscoveryResponse(data) {
				continue
			}
			metrics.DiscoveryResponses.Inc()
			mu.Lock()
			found[addr.IP.String()] = struct{}{}
			mu.Unlock()
		}
	}()

	wg.Wait()

	ips := make([]string, 0, len(found))
	for ip := range found {
		ips = append(ips, ip)
	}
	metrics.DevicesDiscovered.Set(float64(len(ips)))
	return ips, nil
}

// buildDiscoveryRequest appends an optional client tag after the
// captured blob without mutating it, per the design notes open question about
// per-client uniqueness in the discovery payload.
func buildDiscoveryRequest(clientTag []byte) []byte {
	blob := append([]byte(nil), discoveryBlob[:]...)
	blob = append(blob, clientTag...)
	return EncodeDiscoveryRequest(blob)
}

// NewClientTag returns a fresh per-process UUID suitable for
// WithClientTag, so concurrent discoverers on one network segment can be
// told apart in logs.
func NewClientTag() []byte {
	id := uuid.New()
	return id[:]
}
