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

// PropertyDescriptor is an immutable, statically declared description of
// one BACnet object and the properties to read from it, and (optionally)
// how to write it. Mirrors the Python original's DeviceProperty, minus the
// dynamic attribute attachment called out in the design notes — per-
// descriptor enumerations live as named constants in catalogue.go instead.
type PropertyDescriptor struct {
	ObjectType ObjectType
	InstanceId uint32

	// ReadValues is the ordered, non-empty list of property ids read for
	// this object. Defaults to []PropertyId{PresentValue}.
	ReadValues []PropertyId

	// Priority is the BACnet write priority (1..16). Zero means "not set"
	// — the write access spec omits the optional priority tag.
	Priority uint8

	// writeKind overrides the default AnalogValue/BinaryValue/else
	// selection rule when non-zero.
	writeKind WriteKind
}

// NewPropertyDescriptor builds a descriptor that reads PresentValue only.
func NewPropertyDescriptor(t ObjectType, instanceId uint32) PropertyDescriptor {
	return PropertyDescriptor{ObjectType: t, InstanceId: instanceId, ReadValues: []PropertyId{PresentValue}}
}

// WithReadValues returns a copy reading the given property ids instead of
// the default [PresentValue].
func (d PropertyDescriptor) WithReadValues(props ...PropertyId) PropertyDescriptor {
	d.ReadValues = append([]PropertyId(nil), props...)
	return d
}

// WithPriority returns a copy carrying the given write priority.
func (d PropertyDescriptor) WithPriority(p uint8) PropertyDescriptor {
	d.Priority = p
	return d
}

// ObjectIdentifier returns the (type, instance) pair this descriptor names.
func (d PropertyDescriptor) ObjectIdentifier() ObjectIdentifier {
	return ObjectIdentifier{Type: d.ObjectType, InstanceId: d.InstanceId}
}

// WriteKind resolves the tag used for this descriptor's WriteProperty
// value, per the selection rule in the data model unless explicitly overridden.
func (d PropertyDescriptor) WriteKind() WriteKind {
	if d.writeKind != 0 {
		return d.writeKind
	}
	return writeKindFor(d.ObjectType)
}
