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

// Command flexitctl is a command-line client for Flexit Nordic-series
// ventilation units.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flexit/flexit-bacnet/bacnet"
	"github.com/flexit/flexit-bacnet/device"
)

var (
	cfgFile   string
	host               string
	port               int
	deviceID           uint32
	timeout            time.Duration
	outputFmt          string
	verbose            bool
	catalogueOverrides string

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flexitctl",
	Short: "A command-line client for Flexit Nordic ventilation units",
	Long: `flexitctl talks BACnet/IP to a Flexit Nordic-series ventilation unit.

It supports discovery, a typed status view, raw property read/write, and
the comfort-button, ventilation-mode, fireplace, rapid-ventilation,
cooker-hood, electric-heater and filter-timer mutators.

Examples:
  # Discover units on the local broadcast domain
  flexitctl scan

  # Print every reading
  flexitctl status --host 192.168.1.50 --device 2

  # Switch to home ventilation mode
  flexitctl mode set home --host 192.168.1.50 --device 2`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := slog.LevelInfo
		if verbose {
			logLevel = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.flexitctl.yaml)")
	rootCmd.PersistentFlags().StringVarP(&host, "host", "H", "", "Unit IP address")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", bacnet.DefaultPort, "BACnet/IP port")
	rootCmd.PersistentFlags().Uint32VarP(&deviceID, "device", "d", 0, "BACnet device instance ID")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", time.Second, "Confirmed-exchange receive timeout")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format (table, json, csv)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&catalogueOverrides, "catalogue-overrides", "", "YAML file of extra registers to read alongside the built-in catalogue, hot-reloaded on change")

	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("device", rootCmd.PersistentFlags().Lookup("device"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(fireplaceCmd)
	rootCmd.AddCommand(rapidCmd)
	rootCmd.AddCommand(cookerhoodCmd)
	rootCmd.AddCommand(heaterCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(serveMetricsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".flexitctl")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FLEXIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// requireTarget validates the flags every command needs to reach a unit.
func requireTarget() error {
	if host == "" {
		return fmt.Errorf("--host is required")
	}
	if deviceID == 0 {
		return fmt.Errorf("--device is required")
	}
	return nil
}

// newDevice builds a façade against the configured target, registering
// its metrics under the process-wide Prometheus registry. serve-metrics
// runs as its own invocation, so it does not see these collectors.
func newDevice() *device.FlexitDevice {
	return device.New(host, port, deviceID,
		bacnet.WithTimeout(timeout),
		bacnet.WithLogger(logger),
		bacnet.WithMetricsRegisterer(prometheusDefaultRegisterer(), "flexitctl"),
	)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("flexitctl version 1.0.0")
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
