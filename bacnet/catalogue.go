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

// Register map for the Flexit Nordic series, transcribed from the
// vendor's BACnet object list
// (flexit.no/globalassets/catalog/documents/bacnet-nordic-basic_2963.xlsx).
// Unlike the source this was distilled from, which builds its property
// list by scanning module globals at import time, this table is an
// explicit, statically declared list per the design notes — every entry
// here is read by (device.FlexitDevice).Update.
package bacnet

const comfortPriority = 13

// Catalogue entries. Names follow the Flexit register names. ComfortButton,
// VentilationModeProp and CookerHood carry write priority 13; the other
// entries carry no priority, so writes to them omit the priority tag.
var (
	ComfortButton       = NewPropertyDescriptor(BinaryValue, 50).WithPriority(comfortPriority)
	ComfortButtonDelay  = NewPropertyDescriptor(PositiveIntegerValue, 318)
	OperationModeProp   = NewPropertyDescriptor(MultiStateValue, 361)
	VentilationModeProp = NewPropertyDescriptor(MultiStateValue, 42).WithPriority(comfortPriority)

	AirTempSetpointAway = NewPropertyDescriptor(AnalogValue, 1985)
	AirTempSetpointHome = NewPropertyDescriptor(AnalogValue, 1994)

	FireplaceVentilation                  = NewPropertyDescriptor(MultiStateValue, 360)
	FireplaceVentilationRuntime            = NewPropertyDescriptor(PositiveIntegerValue, 270)
	FireplaceVentilationRemainingDuration  = NewPropertyDescriptor(AnalogValue, 2038)

	RapidVentilation                  = NewPropertyDescriptor(MultiStateValue, 357)
	RapidVentilationRuntime           = NewPropertyDescriptor(PositiveIntegerValue, 293)
	RapidVentilationRemainingDuration = NewPropertyDescriptor(AnalogValue, 2031)

	OutsideAirTemperature = NewPropertyDescriptor(AnalogInput, 1)
	SupplyAirTemperature  = NewPropertyDescriptor(AnalogInput, 4)
	TachoSupplyFan        = NewPropertyDescriptor(AnalogInput, 5)
	ExhaustAirTemperature = NewPropertyDescriptor(AnalogInput, 11)
	TachoExhaustFan       = NewPropertyDescriptor(AnalogInput, 12)
	ExtractAirTemperature = NewPropertyDescriptor(AnalogInput, 59)
	RoomTemperature       = NewPropertyDescriptor(AnalogInput, 75)

	FanSpeedSupplyAir  = NewPropertyDescriptor(AnalogOutput, 3)
	FanSpeedExhaustAir = NewPropertyDescriptor(AnalogOutput, 4)

	RotatingHeatExchangerSpeed      = NewPropertyDescriptor(AnalogOutput, 0)
	RotatingHeatExchangerEfficiency = NewPropertyDescriptor(AnalogValue, 2023)

	ElectricalHeater        = NewPropertyDescriptor(BinaryValue, 445)
	ElectricHeaterNomPower  = NewPropertyDescriptor(AnalogValue, 190)
	HeatingCoilElectricPower = NewPropertyDescriptor(AnalogValue, 194)

	CookerHood = NewPropertyDescriptor(BinaryValue, 402).WithPriority(comfortPriority)

	LinearSetpointSupplyAirHigh  = NewPropertyDescriptor(AnalogValue, 1835)
	LinearSetpointSupplyAirHome  = NewPropertyDescriptor(AnalogValue, 1836)
	LinearSetpointSupplyAirAway  = NewPropertyDescriptor(AnalogValue, 1837)
	LinearSetpointSupplyAirFire  = NewPropertyDescriptor(AnalogValue, 1838)
	LinearSetpointSupplyAirCooker = NewPropertyDescriptor(AnalogValue, 1839)

	LinearSetpointExhaustAirHigh  = NewPropertyDescriptor(AnalogValue, 1840)
	LinearSetpointExhaustAirHome  = NewPropertyDescriptor(AnalogValue, 1841)
	LinearSetpointExhaustAirAway  = NewPropertyDescriptor(AnalogValue, 1842)
	LinearSetpointExhaustAirFire  = NewPropertyDescriptor(AnalogValue, 1843)
	LinearSetpointExhaustAirCooker = NewPropertyDescriptor(AnalogValue, 1844)

	AirFilterOperatingTime          = NewPropertyDescriptor(AnalogValue, 285)
	AirFilterTimePeriodForExchange  = NewPropertyDescriptor(AnalogValue, 286)
	AirFilterPolluted               = NewPropertyDescriptor(BinaryValue, 522)
	AirFilterReplaceTimerReset      = NewPropertyDescriptor(MultiStateValue, 613)
)

// All returns every descriptor in the catalogue, in declaration order.
// device.FlexitDevice.Update reads exactly this set plus the Device
// object's Description/ObjectName.
func All() []PropertyDescriptor {
	return []PropertyDescriptor{
		ComfortButton, ComfortButtonDelay, OperationModeProp, VentilationModeProp,
		AirTempSetpointAway, AirTempSetpointHome,
		FireplaceVentilation, FireplaceVentilationRuntime, FireplaceVentilationRemainingDuration,
		RapidVentilation, RapidVentilationRuntime, RapidVentilationRemainingDuration,
		OutsideAirTemperature, SupplyAirTemperature, TachoSupplyFan,
		ExhaustAirTemperature, TachoExhaustFan, ExtractAirTemperature, RoomTemperature,
		FanSpeedSupplyAir, FanSpeedExhaustAir,
		RotatingHeatExchangerSpeed, RotatingHeatExchangerEfficiency,
		ElectricalHeater, ElectricHeaterNomPower, HeatingCoilElectricPower,
		CookerHood,
		LinearSetpointSupplyAirHigh, LinearSetpointSupplyAirHome, LinearSetpointSupplyAirAway,
		LinearSetpointSupplyAirFire, LinearSetpointSupplyAirCooker,
		LinearSetpointExhaustAirHigh, LinearSetpointExhaustAirHome, LinearSetpointExhaustAirAway,
		LinearSetpointExhaustAirFire, LinearSetpointExhaustAirCooker,
		AirFilterOperatingTime, AirFilterTimePeriodForExchange, AirFilterPolluted, AirFilterReplaceTimerReset,
	}
}

// DeviceObject is the Device object itself, read for ObjectName and
// Description (the façade's DeviceName/SerialNumber-adjacent fields).
// instanceId is supplied by the caller (it is the BACnet device id the
// client was constructed with).
func DeviceObject(instanceId uint32) PropertyDescriptor {
	return NewPropertyDescriptor(Device, instanceId).WithReadValues(ObjectName, Description)
}

// BinaryState is the enumerated value written to / read from a
// binaryValue object such as ComfortButton, ElectricalHeater, CookerHood
// or AirFilterPolluted.
type BinaryState uint8

const (
	Inactive BinaryState = 0
	Active   BinaryState = 1
)

func (s BinaryState) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// OperationMode is the read-only heat-recovery-ventilation state
// reported by OperationModeProp.
type OperationMode uint8

const (
	OperationOff           OperationMode = 1
	OperationAway          OperationMode = 2
	OperationHome          OperationMode = 3
	OperationHigh          OperationMode = 4
	OperationFumeHood      OperationMode = 5
	OperationFireplace     OperationMode = 6
	OperationTemporaryHigh OperationMode = 7
)

func (m OperationMode) String() string {
	switch m {
	case OperationOff:
		return "Off"
	case OperationAway:
		return "Away"
	case OperationHome:
		return "Home"
	case OperationHigh:
		return "High"
	case OperationFumeHood:
		return "Fume hood"
	case OperationFireplace:
		return "Fireplace"
	case OperationTemporaryHigh:
		return "Temporary high"
	default:
		return "unknown"
	}
}

// VentilationMode is the writable ventilation setpoint driving
// VentilationModeProp, effective only while ComfortButton is Active.
type VentilationMode uint8

const (
	VentilationStop VentilationMode = 1
	VentilationAway VentilationMode = 2
	VentilationHome VentilationMode = 3
	VentilationHigh VentilationMode = 4
)

func (m VentilationMode) String() string {
	switch m {
	case VentilationStop:
		return "Stop"
	case VentilationAway:
		return "Away"
	case VentilationHome:
		return "Home"
	case VentilationHigh:
		return "High"
	default:
		return "unknown"
	}
}

// TriggerValue is the multiStateValue code that starts a temporary mode
// (fireplace ventilation, rapid ventilation, filter-timer reset).
const TriggerValue uint8 = 2
