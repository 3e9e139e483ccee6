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

// WriteKind selects the application tag used inside a WriteProperty's
// constructed value, per the AnalogValue/BinaryValue/else rule in the data model.
type WriteKind uint8

const (
	WriteUnsignedInt WriteKind = 2
	WriteReal        WriteKind = 4
	WriteEnumerated  WriteKind = 9
)

// writeKindFor implements the selection rule: AnalogValue writes as Real,
// BinaryValue writes as Enumerated, everything else as UnsignedInt.
func writeKindFor(t ObjectType) WriteKind {
	switch t {
	case AnalogValue:
		return WriteReal
	case BinaryValue:
		return WriteEnumerated
	default:
		return WriteUnsignedInt
	}
}

// ValueKind tags which variant a PropertyValue holds.
type ValueKind uint8

const (
	KindUnsigned ValueKind = iota
	KindReal
	KindString
	KindEnumerated
	KindAccessError
)

// PropertyValue is the sum type decoded property values are delivered as:
// Unsigned(u64) | Real(f32) | String(utf8) | Enumerated(u8) | AccessError.
type PropertyValue struct {
	Kind       ValueKind
	Unsigned   uint64
	Real       float32
	Str        string
	Enumerated uint8
}

func UnsignedValue(v uint64) PropertyValue  { return PropertyValue{Kind: KindUnsigned, Unsigned: v} }
func RealValue(v float32) PropertyValue     { return PropertyValue{Kind: KindReal, Real: v} }
func StringValue(v string) PropertyValue    { return PropertyValue{Kind: KindString, Str: v} }
func EnumeratedValue(v uint8) PropertyValue { return PropertyValue{Kind: KindEnumerated, Enumerated: v} }
func AccessErrorValue() PropertyValue       { return PropertyValue{Kind: KindAccessError} }

func (v PropertyValue) String() string {
	switch v.Kind {
	case KindUnsigned:
		return fmt.Sprintf("%d", v.Unsigned)
	case KindReal:
		return fmt.Sprintf("%g", v.Real)
	case KindString:
		return v.Str
	case KindEnumerated:
		return fmt.Sprintf("%d", v.Enumerated)
	case KindAccessError:
		return "<access-error>"
	default:
		return "<invalid>"
	}
}

// PropertyResult is one (PropertyId, PropertyValue) entry, ordered as it
// appeared on the wire.
type PropertyResult struct {
	Property PropertyId
	Value    PropertyValue
}

// DeviceState maps each requested ObjectIdentifier to the ordered results
// returned for it. Order of ids and of each id's properties follows the
// request, per the data model invariants.
type DeviceState struct {
	order   []ObjectIdentifier
	results map[ObjectIdentifier][]PropertyResult
}

func newDeviceState() *DeviceState {
	return &DeviceState{results: make(map[ObjectIdentifier][]PropertyResult)}
}

func (s *DeviceState) append(id ObjectIdentifier, results []PropertyResult) {
	if _, ok := s.results[id]; !ok {
		s.order = append(s.order, id)
	}
	s.results[id] = results
}

// Objects returns the object identifiers present, in wire order.
func (s *DeviceState) Objects() []ObjectIdentifier {
	return append([]ObjectIdentifier(nil), s.order...)
}

// Get returns the ordered property results for id and whether id is
// present at all.
func (s *DeviceState) Get(id ObjectIdentifier) ([]PropertyResult, bool) {
	r, ok := s.results[id]
	return r, ok
}

// Value looks up a single property's value within id's results.
func (s *DeviceState) Value(id ObjectIdentifier, prop PropertyId) (PropertyValue, bool) {
	for _, r := range s.results[id] {
		if r.Property == prop {
			return r.Value, true
		}
	}
	return PropertyValue{}, false
}
