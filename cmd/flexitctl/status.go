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
	"github.com/flexit/flexit-bacnet/device"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read and print every façade value from a unit",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}
	d := newDevice()

	ctx, cancel := context.WithTimeout(context.Background(), timeout*2)
	defer cancel()
	if err := d.Update(ctx); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	rows := statusRows(d)
	if catalogueOverrides != "" {
		overrideRows, err := readOverrideRows(ctx)
		if err != nil {
			return fmt.Errorf("catalogue overrides: %w", err)
		}
		rows = append(rows, overrideRows...)
	}

	switch outputFmt {
	case "json":
		return outputStatusJSON(cmd, rows)
	case "csv":
		return outputStatusCSV(cmd, rows)
	default:
		return outputStatusTable(cmd, rows)
	}
}

type statusRow struct {
	name  string
	value string
	err   error
}

func statusRows(d *device.FlexitDevice) []statusRow {
	rows := []statusRow{}
	add := func(name string, v interface{}, err error) {
		if err != nil {
			rows = append(rows, statusRow{name: name, err: err})
			return
		}
		rows = append(rows, statusRow{name: name, value: fmt.Sprintf("%v", v)})
	}

	name, err := d.DeviceName()
	add("device_name", name, err)
	serial, err := d.SerialNumber()
	add("serial_number", serial, err)

	outside, err := d.OutsideAirTemperature()
	add("outside_air_temperature", outside, err)
	supply, err := d.SupplyAirTemperature()
	add("supply_air_temperature", supply, err)
	exhaust, err := d.ExhaustAirTemperature()
	add("exhaust_air_temperature", exhaust, err)
	extract, err := d.ExtractAirTemperature()
	add("extract_air_temperature", extract, err)
	room, err := d.RoomTemperature()
	add("room_temperature", room, err)

	comfort, err := d.ComfortButton()
	add("comfort_button", comfort, err)
	opMode, err := d.OperationMode()
	add("operation_mode", opMode, err)
	ventMode, err := d.VentilationMode()
	add("ventilation_mode", ventMode, err)

	away, err := d.AirTempSetpointAway()
	add("air_temp_setpoint_away", away, err)
	homeSP, err := d.AirTempSetpointHome()
	add("air_temp_setpoint_home", homeSP, err)

	fireplaceRemaining, err := d.FireplaceVentilationRemainingDuration()
	add("fireplace_ventilation_remaining_minutes", fireplaceRemaining, err)
	rapidRemaining, err := d.RapidVentilationRemainingDuration()
	add("rapid_ventilation_remaining_minutes", rapidRemaining, err)

	supplySignal, err := d.SupplyAirFanControlSignal()
	add("supply_air_fan_control_signal", supplySignal, err)
	supplyRPM, err := d.SupplyAirFanRPM()
	add("supply_air_fan_rpm", supplyRPM, err)
	exhaustSignal, err := d.ExhaustAirFanControlSignal()
	add("exhaust_air_fan_control_signal", exhaustSignal, err)
	exhaustRPM, err := d.ExhaustAirFanRPM()
	add("exhaust_air_fan_rpm", exhaustRPM, err)

	heaterActive, err := d.ElectricHeaterActive()
	add("electric_heater_active", heaterActive, err)
	heaterNominal, err := d.ElectricHeaterNominalPower()
	add("electric_heater_nominal_power", heaterNominal, err)
	heaterPower, err := d.ElectricHeaterPower()
	add("electric_heater_power", heaterPower, err)

	filterTime, err := d.AirFilterOperatingTime()
	add("air_filter_operating_time", filterTime, err)
	filterInterval, err := d.AirFilterExchangeInterval()
	add("air_filter_exchange_interval", filterInterval, err)
	filterPolluted, err := d.AirFilterPolluted()
	add("air_filter_polluted", filterPolluted, err)
	heatExchangerEff, err := d.HeatExchangerEfficiency()
	add("heat_exchanger_efficiency", heatExchangerEff, err)
	heatExchangerSpeed, err := d.HeatExchangerSpeed()
	add("heat_exchanger_speed", heatExchangerSpeed, err)

	return rows
}

func outputStatusTable(cmd *cobra.Command, rows []statusRow) error {
	out := cmd.OutOrStdout()
	for _, r := range rows {
		if r.err != nil {
			fmt.Fprintf(out, "%-42s <error: %v>\n", r.name, r.err)
			continue
		}
		fmt.Fprintf(out, "%-42s %s\n", r.name, r.value)
	}
	return nil
}

func outputStatusJSON(cmd *cobra.Command, rows []statusRow) error {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "{")
	for i, r := range rows {
		if i > 0 {
			fmt.Fprint(out, ",")
		}
		if r.err != nil {
			fmt.Fprintf(out, "%q:null", r.name)
			continue
		}
		fmt.Fprintf(out, "%q:%q", r.name, r.value)
	}
	fmt.Fprintln(out, "}")
	return nil
}

func outputStatusCSV(cmd *cobra.Command, rows []statusRow) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "name,value")
	for _, r := range rows {
		if r.err != nil {
			fmt.Fprintf(out, "%s,\n", r.name)
			continue
		}
		fmt.Fprintf(out, "%s,%s\n", r.name, r.value)
	}
	return nil
}

// readOverrideRows loads --catalogue-overrides, reads each named register
// with a raw client, and converts the result into status rows alongside
// the façade's own. The watcher it starts lives for the duration of ctx;
// status only needs the values once, so a background reload loop that
// outlives this one read is set up but never consulted again.
func readOverrideRows(ctx context.Context) ([]statusRow, error) {
	registry, err := bacnet.WatchOverrides(ctx, catalogueOverrides, logger)
	if err != nil {
		return nil, err
	}
	descriptors := registry.Descriptors()
	names := registry.Names()
	if len(descriptors) == 0 {
		return nil, nil
	}

	client := bacnet.NewClient(host, port, bacnet.WithTimeout(timeout), bacnet.WithLogger(logger))
	state, err := client.ReadPropertyMultiple(descriptors)
	if err != nil {
		return nil, err
	}

	rows := make([]statusRow, len(descriptors))
	for i, d := range descriptors {
		value, ok := state.Value(d.ObjectIdentifier(), d.ReadValues[0])
		if !ok {
			rows[i] = statusRow{name: names[i], err: fmt.Errorf("no value returned for %s", d.ObjectIdentifier())}
			continue
		}
		rows[i] = statusRow{name: names[i], value: value.String()}
	}
	return rows, nil
}
