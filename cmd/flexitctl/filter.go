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

	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Inspect or reset the air filter timer",
}

var filterResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the air filter operating-time counter",
	RunE:  runFilterReset,
}

func init() {
	filterCmd.AddCommand(filterResetCmd)
}

func runFilterReset(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}

	d := newDevice()
	ctx, cancel := context.WithTimeout(context.Background(), timeout*2)
	defer cancel()

	if err := d.ResetAirFilterTimer(ctx); err != nil {
		return fmt.Errorf("reset air filter timer: %w", err)
	}
	fmt.Println("air filter timer reset")
	return nil
}
