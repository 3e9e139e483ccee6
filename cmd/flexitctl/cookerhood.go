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

var cookerhoodCmd = &cobra.Command{
	Use:       "cookerhood {on|off}",
	Short:     "Activate or deactivate cooker-hood boost",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runCookerhood,
}

func runCookerhood(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}

	d := newDevice()
	ctx, cancel := context.WithTimeout(context.Background(), timeout*2)
	defer cancel()

	switch args[0] {
	case "on":
		if err := d.ActivateCookerHood(ctx); err != nil {
			return fmt.Errorf("activate cooker hood: %w", err)
		}
	case "off":
		if err := d.DeactivateCookerHood(ctx); err != nil {
			return fmt.Errorf("deactivate cooker hood: %w", err)
		}
	default:
		return fmt.Errorf("unknown state %q (want on or off)", args[0])
	}
	fmt.Printf("cooker hood %s\n", args[0])
	return nil
}
