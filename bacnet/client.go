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
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/flexit/flexit-bacnet/bacnet/internal/transport"
)

// Client is a one-shot BACnet/IP confirmed-exchange client for a single
// fixed peer: no invoke-id pool, pending-request map, COV subscriptions,
// BBMD registration, or device cache — this client permits only one
// in-flight request, keyed by the fixed invoke id 1, against exactly one
// device.
type Client struct {
	addr string // "ip:port"
	opts *clientOptions
}

// NewClient builds a client for the peer at ip:port.
func NewClient(ip string, port int, opts ...Option) *Client {
	o := defaultClientOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Client{addr: net.JoinHostPort(ip, fmt.Sprintf("%d", port)), opts: o}
}

// exchange implements the sole UdpClient operation from the design: opens a
// connected UDP endpoint, sends request once, awaits the first inbound
// datagram within the configured timeout (1 second by default), always
// closes the socket.
func (c *Client) exchange(request []byte) ([]byte, error) {
	start := time.Now()
	c.opts.metrics.RequestsSent.Inc()

	t, err := transport.DialPeer(c.addr)
	if err != nil {
		c.opts.metrics.RequestsFailed.Inc()
		return nil, newTransportError("dial", err)
	}
	defer t.Close()

	c.opts.logger.Debug("bacnet: sending request", slog.String("peer", c.addr), slog.String("bytes", hex.EncodeToString(request)))

	if err := t.Send(request); err != nil {
		c.opts.metrics.RequestsFailed.Inc()
		return nil, newTransportError("send", err)
	}
	c.opts.metrics.BytesSent.Add(float64(len(request)))

	resp, err := t.Receive(time.Now().Add(c.opts.timeout))
	if err != nil {
		c.opts.metrics.RequestsFailed.Inc()
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			c.opts.metrics.RequestsTimedOut.Inc()
			return nil, newTransportError("receive", ErrTimeout)
		}
		return nil, newTransportError("receive", ErrConnectionLost)
	}

	c.opts.metrics.BytesReceived.Add(float64(len(resp)))
	c.opts.metrics.RequestLatency.Observe(time.Since(start).Seconds())
	c.opts.logger.Debug("bacnet: received response", slog.String("peer", c.addr), slog.String("bytes", hex.EncodeToString(resp)))
	c.opts.metrics.RequestsSucceeded.Inc()
	return resp, nil
}

// ReadPropertyMultiple sends one ReadPropertyMultiple request covering
// all of descriptors and decodes the ComplexAck into a DeviceState.
func (c *Client) ReadPropertyMultiple(descriptors []PropertyDescriptor) (*DeviceState, error) {
	req := EncodeReadPropertyMultiple(descriptors)
	resp, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return DecodeReadPropertyMultipleResponse(resp)
}

// WriteProperty sends one WriteProperty request for d's PresentValue and
// confirms the SimpleAck.
func (c *Client) WriteProperty(d PropertyDescriptor, value PropertyValue) error {
	req := EncodeWriteProperty(d, value)
	resp, err := c.exchange(req)
	if err != nil {
		return err
	}
	return DecodeWritePropertyResponse(resp)
}

// Metrics exposes the client's Prometheus collectors, e.g. for a CLI's
// serve-metrics command to register against a different registry later.
func (c *Client) Metrics() *Metrics { return c.opts.metrics }
