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

package bacnet

import "fmt"

// ObjectType is the closed set of BACnet object types this client ever
// names. Flexit Nordic units expose only these on the wire.
type ObjectType uint8

const (
	AnalogInput          ObjectType = 0
	AnalogOutput         ObjectType = 1
	AnalogValue          ObjectType = 2
	BinaryValue          ObjectType = 5
	Device               ObjectType = 8
	MultiStateValue      ObjectType = 19
	PositiveIntegerValue ObjectType = 48
)

func (t ObjectType) String() string {
	switch t {
	case AnalogInput:
		return "analogInput"
	case AnalogOutput:
		return "analogOutput"
	case AnalogValue:
		return "analogValue"
	case BinaryValue:
		return "binaryValue"
	case Device:
		return "device"
	case MultiStateValue:
		return "multiStateValue"
	case PositiveIntegerValue:
		return "positiveIntegerValue"
	default:
		return fmt.Sprintf("objectType(%d)", uint8(t))
	}
}

func isKnownObjectType(t ObjectType) bool {
	switch t {
	case AnalogInput, AnalogOutput, AnalogValue, BinaryValue, Device, MultiStateValue, PositiveIntegerValue:
		return true
	default:
		return false
	}
}

// PropertyId is the closed subset of BACnet property identifiers used by
// this client.
type PropertyId uint8

const (
	Description PropertyId = 28
	ObjectName  PropertyId = 77
	PresentValue PropertyId = 85
)

func (p PropertyId) String() string {
	switch p {
	case Description:
		return "description"
	case ObjectName:
		return "objectName"
	case PresentValue:
		return "presentValue"
	default:
		return fmt.Sprintf("propertyId(%d)", uint8(p))
	}
}

// ObjectIdentifier packs an ObjectType and an instance id into BACnet's
// 22-bit instance space.
type ObjectIdentifier struct {
	Type       ObjectType
	InstanceId uint32
}

const maxInstanceId = 1<<22 - 1

// Pack encodes the identifier as BACnet's 4-octet big-endian word:
// objectType<<22 | instanceId.
func (o ObjectIdentifier) Pack() uint32 {
	return uint32(o.Type)<<22 | (o.InstanceId & maxInstanceId)
}

// unpackObjectIdentifier reverses Pack, failing on an unrecognized type
// code: an unknown object-type code must fail rather than decode silently.
func unpackObjectIdentifier(word uint32) (ObjectIdentifier, error) {
	code := word >> 22
	inst := word & maxInstanceId
	if code > 0xff || !isKnownObjectType(ObjectType(code)) {
		return ObjectIdentifier{}, &DecodeError{Reason: fmt.Sprintf("unknown object type %d", code)}
	}
	return ObjectIdentifier{Type: ObjectType(code), InstanceId: inst}, nil
}

func (o ObjectIdentifier) String() string {
	return fmt.Sprintf("%s:%d", o.Type, o.InstanceId)
}
