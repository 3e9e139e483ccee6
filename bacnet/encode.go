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

import (
	"encoding/binary"
	"math"
)

// Confirmed/unconfirmed APDU type nibbles and service choices this client
// ever emits or checks for.
const (
	apduTypeConfirmedRequest   = 0
	apduTypeUnconfirmedRequest = 1
	apduTypeSimpleAck          = 2
	apduTypeComplexAck         = 3

	serviceReadPropertyMultiple       = 14
	serviceWriteProperty              = 15
	serviceUnconfirmedPrivateTransfer = 4

	fixedInvokeId    = 1
	maxSegmentsNibble = 0 // unsegmented messages only; this client never segments
	maxApduNibble     = 4 // 1024 octets accepted

	vendorIDSiemens     = 7
	discoveryServiceReq = 515
	discoveryServiceAck = 516
)

// confirmedHeader appends the 4-octet confirmed-request APDU header
// shared by ReadPropertyMultiple and WriteProperty (the design): PDU type in
// the high nibble of byte 0 with no segmentation flags set, segments-
// accepted/max-APDU in byte 1, the fixed invoke id, then the service
// choice.
func confirmedHeader(serviceChoice byte) []byte {
	return []byte{
		apduTypeConfirmedRequest << 4,
		maxSegmentsNibble<<4 | maxApduNibble,
		fixedInvokeId,
		serviceChoice,
	}
}

// EncodeReadPropertyMultiple builds a complete ReadPropertyMultiple frame
// for the given descriptors, per the design.
func EncodeReadPropertyMultiple(descriptors []PropertyDescriptor) []byte {
	apdu := confirmedHeader(serviceReadPropertyMultiple)
	for _, d := range descriptors {
		apdu = appendReadAccessSpecification(apdu, d)
	}
	return buildFrame(bvlcFunctionUnicast, npduControlExpectReply, apdu)
}

func appendReadAccessSpecification(buf []byte, d PropertyDescriptor) []byte {
	buf = ctxTag(buf, 0, 4)
	objWord := make([]byte, 4)
	binary.BigEndian.PutUint32(objWord, d.ObjectIdentifier().Pack())
	buf = append(buf, objWord...)

	buf = ctxOpen(buf, 1)
	readValues := d.ReadValues
	if len(readValues) == 0 {
		readValues = []PropertyId{PresentValue}
	}
	for _, p := range readValues {
		buf = ctxTag(buf, 0, 1)
		buf = append(buf, byte(p))
	}
	buf = ctxClose(buf, 1)
	return buf
}

// EncodeWriteProperty builds a complete WriteProperty frame writing value
// to the PresentValue property of d's object, per the design.
func EncodeWriteProperty(d PropertyDescriptor, value PropertyValue) []byte {
	apdu := confirmedHeader(serviceWriteProperty)

	apdu = ctxTag(apdu, 0, 4)
	objWord := make([]byte, 4)
	binary.BigEndian.PutUint32(objWord, d.ObjectIdentifier().Pack())
	apdu = append(apdu, objWord...)

	apdu = ctxTag(apdu, 1, 1)
	apdu = append(apdu, byte(PresentValue))

	apdu = ctxOpen(apdu, 3)
	apdu = appendWriteValue(apdu, d.WriteKind(), value)
	apdu = ctxClose(apdu, 3)

	if d.Priority != 0 {
		apdu = ctxTag(apdu, 4, 1)
		apdu = append(apdu, d.Priority)
	}

	return buildFrame(bvlcFunctionUnicast, npduControlExpectReply, apdu)
}

func appendWriteValue(buf []byte, kind WriteKind, value PropertyValue) []byte {
	switch kind {
	case WriteReal:
		buf = appTag(buf, int(appTagReal), 4)
		bits := math.Float32bits(value.Real)
		word := make([]byte, 4)
		binary.BigEndian.PutUint32(word, bits)
		return append(buf, word...)
	case WriteEnumerated:
		buf = appTag(buf, int(appTagEnumerated), 1)
		return append(buf, value.Enumerated)
	default: // WriteUnsignedInt
		buf = appTag(buf, int(appTagUnsignedInt), 1)
		return append(buf, byte(value.Unsigned))
	}
}

// EncodeDiscoveryRequest builds the vendor-specific UnconfirmedPrivateTransfer
// broadcast used for discovery, per the design. blob is normally the captured
// 100-octet vendor payload, carried byte-for-byte; callers may append
// extra trailing bytes (see WithClientTag) without altering the captured
// prefix.
func EncodeDiscoveryRequest(blob []byte) []byte {
	apdu := []byte{
		byte(apduTypeUnconfirmedRequest << 4),
		serviceUnconfirmedPrivateTransfer,
	}
	apdu = ctxTag(apdu, 0, 1)
	apdu = append(apdu, vendorIDSiemens)

	apdu = ctxTag(apdu, 1, 2)
	svc := make([]byte, 2)
	binary.BigEndian.PutUint16(svc, discoveryServiceReq)
	apdu = append(apdu, svc...)

	apdu = ctxOpen(apdu, 2)
	apdu = append(apdu, blob...)
	apdu = ctxClose(apdu, 2)

	return buildFrame(bvlcFunctionBroadcast, npduControlNoReply, apdu)
}
