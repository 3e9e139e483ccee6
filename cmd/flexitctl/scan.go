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
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flexit/flexit-bacnet/bacnet"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover Flexit units on the local broadcast domain",
	Long: `scan sends the vendor-specific private-transfer discovery
broadcast and reports the IP address of every unit that answers.

Examples:
  flexitctl scan
  flexitctl scan --timeout 5s`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Second, "Discovery window")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stderr, "scanning for Flexit units...")

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout+time.Second)
	defer cancel()

	ips, err := bacnet.Discover(ctx, logger, nil, bacnet.WithDiscoverTimeout(scanTimeout))
	if err != nil {
		return fmt.Errorf("discovery: %w", err)
	}

	if len(ips) == 0 {
		fmt.Println("no units found")
		return nil
	}

	switch outputFmt {
	case "json":
		fmt.Print("[")
		for i, ip := range ips {
			if i > 0 {
				fmt.Print(",")
			}
			fmt.Printf("%q", ip)
		}
		fmt.Println("]")
	case "csv":
		for _, ip := range ips {
			fmt.Println(ip)
		}
	default:
		fmt.Printf("%-20s\n", "ADDRESS")
		for _, ip := range ips {
			fmt.Printf("%-20s\n", ip)
		}
		fmt.Printf("\nfound %d unit(s)\n", len(ips))
	}
	return nil
}
