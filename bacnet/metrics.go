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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for one client's requests and
// discovery rounds: requests sent/succeeded/failed/timed-out, bytes
// transferred, discovery rounds and responses, and request latency, all
// flowing through a standard /metrics surface.
type Metrics struct {
	RequestsSent      prometheus.Counter
	RequestsSucceeded prometheus.Counter
	RequestsFailed    prometheus.Counter
	RequestsTimedOut  prometheus.Counter

	DiscoveryRoundsSent  prometheus.Counter
	DiscoveryResponses   prometheus.Counter
	DevicesDiscovered    prometheus.Gauge

	BytesSent     prometheus.Counter
	BytesReceived prometheus.Counter

	RequestLatency prometheus.Histogram
}

// NewMetrics builds a Metrics set and registers it with reg. Passing a
// fresh prometheus.NewRegistry() per client keeps multiple clients from
// colliding on collector names; passing prometheus.DefaultRegisterer
// exposes the client on the process-wide /metrics endpoint.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		RequestsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "requests_sent_total", Help: "Confirmed requests sent.",
		}),
		RequestsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "requests_succeeded_total", Help: "Confirmed requests that received a response datagram.",
		}),
		RequestsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "requests_failed_total", Help: "Confirmed requests that failed at the transport layer.",
		}),
		RequestsTimedOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "requests_timed_out_total", Help: "Confirmed requests that hit the receive timeout.",
		}),
		DiscoveryRoundsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "discovery_broadcasts_sent_total", Help: "Discovery broadcasts sent.",
		}),
		DiscoveryResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "discovery_responses_total", Help: "Discovery responses observed (including duplicates).",
		}),
		DevicesDiscovered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "discovery_devices", Help: "Distinct IPs seen in the most recent discover() call.",
		}),
		BytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "bytes_sent_total", Help: "Bytes written to the network.",
		}),
		BytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "bytes_received_total", Help: "Bytes read from the network.",
		}),
		RequestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "request_latency_seconds", Help: "Confirmed exchange latency.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.RequestsSent, m.RequestsSucceeded, m.RequestsFailed, m.RequestsTimedOut,
			m.DiscoveryRoundsSent, m.DiscoveryResponses, m.DevicesDiscovered,
			m.BytesSent, m.BytesReceived, m.RequestLatency,
		)
	}
	return m
}
