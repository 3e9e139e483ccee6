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

// Package device is the out-of-core façade over the BACnet engine: a
// cached, typed view of one Flexit Nordic unit's properties, built on top
// of bacnet.Client and bacnet.catalogue rather than speaking BACnet
// itself.
package device

import (
	"context"
	"errors"
	"math"

	"github.com/flexit/flexit-bacnet/bacnet"
)

// ErrNotUpdated is returned by any accessor called before a successful
// Update.
var ErrNotUpdated = errors.New("device: must call Update before reading values")

// FlexitDevice wraps a bacnet.Client and a BACnet device instance id with
// the most recently fetched bacnet.DeviceState. It never parses BACnet
// wire bytes itself — every read and write goes through the client.
type FlexitDevice struct {
	client   *bacnet.Client
	deviceID uint32
	state    *bacnet.DeviceState
}

// New builds a façade for the device instance deviceID at ip:port.
func New(ip string, port int, deviceID uint32, opts ...bacnet.Option) *FlexitDevice {
	return &FlexitDevice{
		client:   bacnet.NewClient(ip, port, opts...),
		deviceID: deviceID,
	}
}

// Update refreshes the cached state by reading the full catalogue plus
// the device object's name and description. The cache is only replaced
// on success.
func (d *FlexitDevice) Update(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	descriptors := append(bacnet.All(), bacnet.DeviceObject(d.deviceID))
	state, err := d.client.ReadPropertyMultiple(descriptors)
	if err != nil {
		return err
	}
	d.state = state
	return nil
}

// IsValid attempts an Update and reports whether host:port, deviceID
// names a reachable Flexit unit. A TransportError is reported as "not a
// valid peer" (false, nil); any other error, notably a DecodeError, is
// still returned so callers can tell "no peer" from "peer is confused".
func (d *FlexitDevice) IsValid(ctx context.Context) (bool, error) {
	err := d.Update(ctx)
	if err == nil {
		return true, nil
	}
	if bacnet.IsTransportError(err) {
		return false, nil
	}
	return false, err
}

func (d *FlexitDevice) value(descriptor bacnet.PropertyDescriptor, prop bacnet.PropertyId) (bacnet.PropertyValue, error) {
	if d.state == nil {
		return bacnet.PropertyValue{}, ErrNotUpdated
	}
	v, ok := d.state.Value(descriptor.ObjectIdentifier(), prop)
	if !ok {
		return bacnet.PropertyValue{}, ErrNotUpdated
	}
	return v, nil
}

func (d *FlexitDevice) presentValue(descriptor bacnet.PropertyDescriptor) (bacnet.PropertyValue, error) {
	return d.value(descriptor, bacnet.PresentValue)
}

func round1(x float32) float64 {
	return math.Round(float64(x)*10) / 10
}

func (d *FlexitDevice) temperature(descriptor bacnet.PropertyDescriptor) (float64, error) {
	v, err := d.presentValue(descriptor)
	if err != nil {
		return 0, err
	}
	return round1(v.Real), nil
}

func (d *FlexitDevice) readInt(descriptor bacnet.PropertyDescriptor) (int, error) {
	v, err := d.presentValue(descriptor)
	if err != nil {
		return 0, err
	}
	return int(v.Real), nil
}

func (d *FlexitDevice) active(descriptor bacnet.PropertyDescriptor) (bool, error) {
	v, err := d.presentValue(descriptor)
	if err != nil {
		return false, err
	}
	return bacnet.BinaryState(v.Enumerated) == bacnet.Active, nil
}

// --- Device identity ---

// DeviceName returns the device's BACnet object name, e.g. "HvacFnct21y_A".
func (d *FlexitDevice) DeviceName() (string, error) {
	v, err := d.value(bacnet.DeviceObject(d.deviceID), bacnet.ObjectName)
	if err != nil {
		return "", err
	}
	return v.Str, nil
}

// SerialNumber returns the device's serial number, read from the Device
// object's Description property, e.g. "800220-000000".
func (d *FlexitDevice) SerialNumber() (string, error) {
	v, err := d.value(bacnet.DeviceObject(d.deviceID), bacnet.Description)
	if err != nil {
		return "", err
	}
	return v.Str, nil
}

// --- Sensors ---

func (d *FlexitDevice) OutsideAirTemperature() (float64, error) {
	return d.temperature(bacnet.OutsideAirTemperature)
}

func (d *FlexitDevice) SupplyAirTemperature() (float64, error) {
	return d.temperature(bacnet.SupplyAirTemperature)
}

func (d *FlexitDevice) ExhaustAirTemperature() (float64, error) {
	return d.temperature(bacnet.ExhaustAirTemperature)
}

func (d *FlexitDevice) ExtractAirTemperature() (float64, error) {
	return d.temperature(bacnet.ExtractAirTemperature)
}

func (d *FlexitDevice) RoomTemperature() (float64, error) {
	return d.temperature(bacnet.RoomTemperature)
}

// --- Comfort button ---

// ComfortButton reports the comfort button's current state.
func (d *FlexitDevice) ComfortButton() (bacnet.BinaryState, error) {
	v, err := d.presentValue(bacnet.ComfortButton)
	if err != nil {
		return 0, err
	}
	return bacnet.BinaryState(v.Enumerated), nil
}

// ActivateComfortButton enables the comfort button and refreshes state.
func (d *FlexitDevice) ActivateComfortButton(ctx context.Context) error {
	return d.setValue(ctx, bacnet.ComfortButton, bacnet.EnumeratedValue(uint8(bacnet.Active)))
}

// DeactivateComfortButton disables the comfort button after delayMinutes
// (0..600), matching the order the original issues the two writes in:
// delay first, then the button state itself.
func (d *FlexitDevice) DeactivateComfortButton(ctx context.Context, delayMinutes int) error {
	if delayMinutes < 0 || delayMinutes > 600 {
		return bacnet.NewInvalidArgument("delayMinutes", "must be between 0 and 600")
	}
	if err := d.writeOnly(bacnet.ComfortButtonDelay, bacnet.UnsignedValue(uint64(delayMinutes))); err != nil {
		return err
	}
	return d.setValue(ctx, bacnet.ComfortButton, bacnet.EnumeratedValue(uint8(bacnet.Inactive)))
}

// --- Operation / ventilation mode ---

func (d *FlexitDevice) OperationMode() (bacnet.OperationMode, error) {
	v, err := d.presentValue(bacnet.OperationModeProp)
	if err != nil {
		return 0, err
	}
	return bacnet.OperationMode(v.Enumerated), nil
}

// VentilationMode returns the current ventilation setpoint. It only
// takes effect while ComfortButton is Active; while inactive the device
// reports Away regardless of the last write.
func (d *FlexitDevice) VentilationMode() (bacnet.VentilationMode, error) {
	v, err := d.presentValue(bacnet.VentilationModeProp)
	if err != nil {
		return 0, err
	}
	return bacnet.VentilationMode(v.Enumerated), nil
}

func (d *FlexitDevice) SetVentilationMode(ctx context.Context, mode bacnet.VentilationMode) error {
	return d.setValue(ctx, bacnet.VentilationModeProp, bacnet.UnsignedValue(uint64(mode)))
}

// --- Temperature setpoints ---

func (d *FlexitDevice) AirTempSetpointAway() (float64, error) {
	v, err := d.presentValue(bacnet.AirTempSetpointAway)
	if err != nil {
		return 0, err
	}
	return float64(v.Real), nil
}

func (d *FlexitDevice) SetAirTempSetpointAway(ctx context.Context, celsius float32) error {
	return d.setValue(ctx, bacnet.AirTempSetpointAway, bacnet.RealValue(celsius))
}

func (d *FlexitDevice) AirTempSetpointHome() (float64, error) {
	v, err := d.presentValue(bacnet.AirTempSetpointHome)
	if err != nil {
		return 0, err
	}
	return float64(v.Real), nil
}

func (d *FlexitDevice) SetAirTempSetpointHome(ctx context.Context, celsius float32) error {
	return d.setValue(ctx, bacnet.AirTempSetpointHome, bacnet.RealValue(celsius))
}

// --- Fireplace / rapid ventilation ---

// StartFireplaceVentilation triggers temporary fireplace ventilation for
// minutes (1..360): the runtime is written first, then the trigger.
func (d *FlexitDevice) StartFireplaceVentilation(ctx context.Context, minutes int) error {
	if minutes < 1 || minutes > 360 {
		return bacnet.NewInvalidArgument("minutes", "must be between 1 and 360")
	}
	if err := d.writeOnly(bacnet.FireplaceVentilationRuntime, bacnet.UnsignedValue(uint64(minutes))); err != nil {
		return err
	}
	return d.setValue(ctx, bacnet.FireplaceVentilation, bacnet.UnsignedValue(uint64(bacnet.TriggerValue)))
}

func (d *FlexitDevice) FireplaceVentilationRemainingDuration() (int, error) {
	v, err := d.presentValue(bacnet.FireplaceVentilationRemainingDuration)
	if err != nil {
		return 0, err
	}
	return int(v.Real), nil
}

// StartRapidVentilation triggers temporary rapid ventilation for minutes
// (1..360), same write order as StartFireplaceVentilation.
func (d *FlexitDevice) StartRapidVentilation(ctx context.Context, minutes int) error {
	if minutes < 1 || minutes > 360 {
		return bacnet.NewInvalidArgument("minutes", "must be between 1 and 360")
	}
	if err := d.writeOnly(bacnet.RapidVentilationRuntime, bacnet.UnsignedValue(uint64(minutes))); err != nil {
		return err
	}
	return d.setValue(ctx, bacnet.RapidVentilation, bacnet.UnsignedValue(uint64(bacnet.TriggerValue)))
}

func (d *FlexitDevice) RapidVentilationRemainingDuration() (int, error) {
	v, err := d.presentValue(bacnet.RapidVentilationRemainingDuration)
	if err != nil {
		return 0, err
	}
	return int(v.Real), nil
}

// --- Fans ---

func (d *FlexitDevice) SupplyAirFanControlSignal() (int, error) {
	return d.readInt(bacnet.FanSpeedSupplyAir)
}

func (d *FlexitDevice) SupplyAirFanRPM() (int, error) {
	return d.readInt(bacnet.TachoSupplyFan)
}

func (d *FlexitDevice) ExhaustAirFanControlSignal() (int, error) {
	return d.readInt(bacnet.FanSpeedExhaustAir)
}

func (d *FlexitDevice) ExhaustAirFanRPM() (int, error) {
	return d.readInt(bacnet.TachoExhaustFan)
}

// --- Electric heater ---

func (d *FlexitDevice) ElectricHeaterActive() (bool, error) {
	return d.active(bacnet.ElectricalHeater)
}

func (d *FlexitDevice) EnableElectricHeater(ctx context.Context) error {
	return d.setValue(ctx, bacnet.ElectricalHeater, bacnet.EnumeratedValue(uint8(bacnet.Active)))
}

func (d *FlexitDevice) DisableElectricHeater(ctx context.Context) error {
	return d.setValue(ctx, bacnet.ElectricalHeater, bacnet.EnumeratedValue(uint8(bacnet.Inactive)))
}

func (d *FlexitDevice) ElectricHeaterNominalPower() (float64, error) {
	v, err := d.presentValue(bacnet.ElectricHeaterNomPower)
	if err != nil {
		return 0, err
	}
	return float64(v.Real), nil
}

func (d *FlexitDevice) ElectricHeaterPower() (float64, error) {
	v, err := d.presentValue(bacnet.HeatingCoilElectricPower)
	if err != nil {
		return 0, err
	}
	return float64(v.Real), nil
}

// --- Cooker hood ---

func (d *FlexitDevice) ActivateCookerHood(ctx context.Context) error {
	return d.setValue(ctx, bacnet.CookerHood, bacnet.EnumeratedValue(uint8(bacnet.Active)))
}

func (d *FlexitDevice) DeactivateCookerHood(ctx context.Context) error {
	return d.setValue(ctx, bacnet.CookerHood, bacnet.EnumeratedValue(uint8(bacnet.Inactive)))
}

// --- Fan setpoints (supply + exhaust, by ventilation regime) ---

func (d *FlexitDevice) FanSetpointSupplyAirHome() (int, error) {
	return d.readInt(bacnet.LinearSetpointSupplyAirHome)
}

func (d *FlexitDevice) SetFanSetpointSupplyAirHome(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointSupplyAirHome, bacnet.RealValue(float32(percent)))
}

func (d *FlexitDevice) FanSetpointExhaustAirHome() (int, error) {
	return d.readInt(bacnet.LinearSetpointExhaustAirHome)
}

func (d *FlexitDevice) SetFanSetpointExhaustAirHome(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointExhaustAirHome, bacnet.RealValue(float32(percent)))
}

func (d *FlexitDevice) FanSetpointSupplyAirHigh() (int, error) {
	return d.readInt(bacnet.LinearSetpointSupplyAirHigh)
}

func (d *FlexitDevice) SetFanSetpointSupplyAirHigh(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointSupplyAirHigh, bacnet.RealValue(float32(percent)))
}

func (d *FlexitDevice) FanSetpointExhaustAirHigh() (int, error) {
	return d.readInt(bacnet.LinearSetpointExhaustAirHigh)
}

func (d *FlexitDevice) SetFanSetpointExhaustAirHigh(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointExhaustAirHigh, bacnet.RealValue(float32(percent)))
}

func (d *FlexitDevice) FanSetpointSupplyAirAway() (int, error) {
	return d.readInt(bacnet.LinearSetpointSupplyAirAway)
}

func (d *FlexitDevice) SetFanSetpointSupplyAirAway(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointSupplyAirAway, bacnet.RealValue(float32(percent)))
}

func (d *FlexitDevice) FanSetpointExhaustAirAway() (int, error) {
	return d.readInt(bacnet.LinearSetpointExhaustAirAway)
}

func (d *FlexitDevice) SetFanSetpointExhaustAirAway(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointExhaustAirAway, bacnet.RealValue(float32(percent)))
}

func (d *FlexitDevice) FanSetpointSupplyAirCooker() (int, error) {
	return d.readInt(bacnet.LinearSetpointSupplyAirCooker)
}

func (d *FlexitDevice) SetFanSetpointSupplyAirCooker(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointSupplyAirCooker, bacnet.RealValue(float32(percent)))
}

func (d *FlexitDevice) FanSetpointExhaustAirCooker() (int, error) {
	return d.readInt(bacnet.LinearSetpointExhaustAirCooker)
}

func (d *FlexitDevice) SetFanSetpointExhaustAirCooker(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointExhaustAirCooker, bacnet.RealValue(float32(percent)))
}

func (d *FlexitDevice) FanSetpointSupplyAirFire() (int, error) {
	return d.readInt(bacnet.LinearSetpointSupplyAirFire)
}

func (d *FlexitDevice) SetFanSetpointSupplyAirFire(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointSupplyAirFire, bacnet.RealValue(float32(percent)))
}

func (d *FlexitDevice) FanSetpointExhaustAirFire() (int, error) {
	return d.readInt(bacnet.LinearSetpointExhaustAirFire)
}

func (d *FlexitDevice) SetFanSetpointExhaustAirFire(ctx context.Context, percent int) error {
	return d.setValue(ctx, bacnet.LinearSetpointExhaustAirFire, bacnet.RealValue(float32(percent)))
}

// --- Filters & heat exchanger ---

func (d *FlexitDevice) AirFilterOperatingTime() (float64, error) {
	v, err := d.presentValue(bacnet.AirFilterOperatingTime)
	if err != nil {
		return 0, err
	}
	return float64(v.Real), nil
}

func (d *FlexitDevice) AirFilterExchangeInterval() (float64, error) {
	v, err := d.presentValue(bacnet.AirFilterTimePeriodForExchange)
	if err != nil {
		return 0, err
	}
	return float64(v.Real), nil
}

func (d *FlexitDevice) HeatExchangerEfficiency() (int, error) {
	v, err := d.presentValue(bacnet.RotatingHeatExchangerEfficiency)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(v.Real))), nil
}

func (d *FlexitDevice) HeatExchangerSpeed() (int, error) {
	v, err := d.presentValue(bacnet.RotatingHeatExchangerSpeed)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(v.Real))), nil
}

func (d *FlexitDevice) AirFilterPolluted() (bool, error) {
	return d.active(bacnet.AirFilterPolluted)
}

// ResetAirFilterTimer clears the replace-filter alarm.
func (d *FlexitDevice) ResetAirFilterTimer(ctx context.Context) error {
	return d.setValue(ctx, bacnet.AirFilterReplaceTimerReset, bacnet.UnsignedValue(uint64(bacnet.TriggerValue)))
}

// setValue writes value to descriptor's PresentValue then refreshes the
// cached state, matching the original's write-then-refresh pattern.
func (d *FlexitDevice) setValue(ctx context.Context, descriptor bacnet.PropertyDescriptor, value bacnet.PropertyValue) error {
	if err := d.writeOnly(descriptor, value); err != nil {
		return err
	}
	return d.Update(ctx)
}

func (d *FlexitDevice) writeOnly(descriptor bacnet.PropertyDescriptor, value bacnet.PropertyValue) error {
	return d.client.WriteProperty(descriptor, value)
}

// Metrics exposes the underlying client's Prometheus collectors.
func (d *FlexitDevice) Metrics() *bacnet.Metrics { return d.client.Metrics() }
