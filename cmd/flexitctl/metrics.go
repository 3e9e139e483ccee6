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

package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// prometheusDefaultRegisterer returns the process-wide registerer so a
// client's collectors land on the same /metrics surface serve-metrics
// exposes.
func prometheusDefaultRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

var serveMetricsAddr string

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Expose the Prometheus registry over HTTP",
	Long: `serve-metrics starts an HTTP server exposing this process's default
Prometheus registry on /metrics.

Each flexitctl invocation is a separate process, so the request counters
registered by watch, dashboard or status in another invocation are not
part of what this server exposes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		fmt.Fprintf(cmd.OutOrStdout(), "serving metrics on %s/metrics\n", serveMetricsAddr)
		return http.ListenAndServe(serveMetricsAddr, mux)
	},
}

func init() {
	serveMetricsCmd.Flags().StringVar(&serveMetricsAddr, "addr", ":9100", "Listen address")
}
