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
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// clientOptions holds configuration for a Client. There is no
// BBMD/segmentation/COV configuration here — this client only ever does
// a one-shot confirmed exchange against a single fixed peer.
type clientOptions struct {
	timeout time.Duration
	logger  *slog.Logger
	metrics *Metrics
}

func defaultClientOptions() *clientOptions {
	return &clientOptions{
		timeout: time.Second, // default; WithTimeout overrides it
		logger:  slog.Default(),
		metrics: NewMetrics(nil, "bacnet_client"),
	}
}

// Option configures a Client.
type Option func(*clientOptions)

// WithTimeout overrides the confirmed-exchange receive timeout, which is
// 1 second by default. Tests use this to shrink the timeout against an
// unreachable peer, and flexitctl's --timeout flag sets it.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithLogger sets the structured logger used for request/response
// hex-dump tracing (replaces the DEBUG env var from the external interface).
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// WithMetricsRegisterer registers the client's Prometheus collectors with
// reg under the given namespace instead of leaving them unregistered.
func WithMetricsRegisterer(reg prometheus.Registerer, namespace string) Option {
	return func(o *clientOptions) { o.metrics = NewMetrics(reg, namespace) }
}

// discoverOptions holds configuration for Discover.
type discoverOptions struct {
	timeout           time.Duration
	broadcastAddr     string
	broadcastInterval time.Duration
	clientTag         []byte
}

func defaultDiscoverOptions() *discoverOptions {
	return &discoverOptions{
		timeout:           2 * time.Second,
		broadcastAddr:     "255.255.255.255:47808",
		broadcastInterval: 100 * time.Millisecond,
	}
}

// DiscoverOption configures a Discover call.
type DiscoverOption func(*discoverOptions)

// WithDiscoverTimeout overrides the default 2-second collection window.
func WithDiscoverTimeout(d time.Duration) DiscoverOption {
	return func(o *discoverOptions) { o.timeout = d }
}

// WithBroadcastAddress overrides the global broadcast address, e.g. for
// a per-interface directed broadcast recovered from network.py's
// enumeration (falling back to per-interface broadcast addresses).
func WithBroadcastAddress(addr string) DiscoverOption {
	return func(o *discoverOptions) { o.broadcastAddr = addr }
}

// WithClientTag appends extra bytes to the outgoing discovery blob's tail
// (the design notes open question about per-client uniqueness) without disturbing the
// captured 100-octet prefix.
func WithClientTag(tag []byte) DiscoverOption {
	return func(o *discoverOptions) { o.clientTag = tag }
}
