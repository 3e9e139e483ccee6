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
	"strconv"

	"github.com/spf13/cobra"
)

var fireplaceCmd = &cobra.Command{
	Use:   "fireplace",
	Short: "Control fireplace boost ventilation",
}

var fireplaceStartCmd = &cobra.Command{
	Use:   "start <minutes>",
	Short: "Start fireplace ventilation for the given duration (1-360 minutes)",
	Args:  cobra.ExactArgs(1),
	RunE:  runFireplaceStart,
}

func init() {
	fireplaceCmd.AddCommand(fireplaceStartCmd)
}

func runFireplaceStart(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", args[0], err)
	}

	d := newDevice()
	ctx, cancel := context.WithTimeout(context.Background(), timeout*2)
	defer cancel()

	if err := d.StartFireplaceVentilation(ctx, minutes); err != nil {
		return fmt.Errorf("start fireplace ventilation: %w", err)
	}
	fmt.Printf("fireplace ventilation started for %d minute(s)\n", minutes)
	return nil
}
