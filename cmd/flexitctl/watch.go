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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll a unit on a fixed schedule, logging filter-timer warnings",
	Long: `watch runs Update on a cron schedule for as long as the process
lives, logging every poll and warning once the air filter is reported
polluted. Its request counters are registered with this process's
default Prometheus registry; no HTTP metrics endpoint is served.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Minute, "Polling interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}
	d := newDevice()

	c := cron.New(cron.WithSeconds())
	spec := fmt.Sprintf("@every %s", watchInterval)

	poll := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout*2)
		defer cancel()

		if err := d.Update(ctx); err != nil {
			logger.Error("poll failed", slog.String("host", host), slog.Any("error", err))
			return
		}

		polluted, err := d.AirFilterPolluted()
		if err != nil {
			logger.Error("read air filter status", slog.Any("error", err))
			return
		}
		if polluted {
			logger.Warn("air filter reports polluted", slog.String("host", host), slog.Uint64("device", uint64(deviceID)))
		} else {
			logger.Info("poll ok", slog.String("host", host), slog.Uint64("device", uint64(deviceID)))
		}
	}

	if _, err := c.AddFunc(spec, poll); err != nil {
		return fmt.Errorf("schedule poll: %w", err)
	}

	poll()
	c.Start()
	defer c.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s every %s, press Ctrl+C to stop\n", host, watchInterval)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
