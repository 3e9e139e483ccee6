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

	"github.com/flexit/flexit-bacnet/bacnet"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Read or change the ventilation mode",
}

var modeSetCmd = &cobra.Command{
	Use:       "set {stop|away|home|high}",
	Short:     "Write the ventilation mode setpoint",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"stop", "away", "home", "high"},
	RunE:      runModeSet,
}

func init() {
	modeCmd.AddCommand(modeSetCmd)
}

var ventilationModeNames = map[string]bacnet.VentilationMode{
	"stop": bacnet.VentilationStop,
	"away": bacnet.VentilationAway,
	"home": bacnet.VentilationHome,
	"high": bacnet.VentilationHigh,
}

func runModeSet(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}
	mode, ok := ventilationModeNames[args[0]]
	if !ok {
		return fmt.Errorf("unknown ventilation mode %q (want stop, away, home or high)", args[0])
	}

	d := newDevice()
	ctx, cancel := context.WithTimeout(context.Background(), timeout*2)
	defer cancel()

	if err := d.SetVentilationMode(ctx, mode); err != nil {
		return fmt.Errorf("set ventilation mode: %w", err)
	}
	fmt.Printf("ventilation mode set to %s\n", mode)
	return nil
}
