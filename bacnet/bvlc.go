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

import "encoding/binary"

// DefaultPort is the BACnet/IP well-known UDP port.
const DefaultPort = 47808

// BVLC type and function codes. Only the two functions this client ever
// emits or recognizes are named; forwarded-NPDU, BBMD registration and the
// rest of Annex J are out of scope.
const (
	bvlcType               = 0x81
	bvlcFunctionUnicast    = 0x0a
	bvlcFunctionBroadcast  = 0x0b
	bvlcHeaderLen          = 4
	npduConfirmedLen       = 2
	apduHeaderLen          = 4
	minFrameLen            = bvlcHeaderLen + npduConfirmedLen + 3
)

// npduControlExpectReply is set on confirmed-service NPDUs; discovery's
// unconfirmed broadcast uses 0x00 instead.
const (
	npduVersion            = 0x01
	npduControlExpectReply = 0x04
	npduControlNoReply     = 0x00
)

// buildFrame prepends BVLC and NPDU headers to an already-encoded APDU and
// returns the complete frame. fn selects unicast vs broadcast; npduControl
// selects expect-reply vs not.
func buildFrame(fn byte, npduControl byte, apdu []byte) []byte {
	total := bvlcHeaderLen + npduConfirmedLen + len(apdu)
	frame := make([]byte, 0, total)
	frame = append(frame, bvlcType, fn, 0, 0)
	binary.BigEndian.PutUint16(frame[2:4], uint16(total))
	frame = append(frame, npduVersion, npduControl)
	frame = append(frame, apdu...)
	return frame
}
