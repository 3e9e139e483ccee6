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

// checkBVLC validates the outer 4-octet header and returns the APDU
// slice (everything after BVLC+NPDU), per the design framing checks.
func checkBVLC(frame []byte, wantFn byte) ([]byte, error) {
	if len(frame) < minFrameLen {
		return nil, newDecodeError("frame shorter than BVLC+NPDU+APDU header", frame)
	}
	if frame[0] != bvlcType || frame[1] != wantFn {
		return nil, newDecodeError("unexpected BVLC type or function", frame)
	}
	return frame[bvlcHeaderLen+npduConfirmedLen:], nil
}

// DecodeReadPropertyMultipleResponse parses a ComplexAck carrying the
// results of a ReadPropertyMultiple request, per the design.
func DecodeReadPropertyMultipleResponse(frame []byte) (*DeviceState, error) {
	apdu, err := checkBVLC(frame, bvlcFunctionUnicast)
	if err != nil {
		return nil, err
	}
	if apdu[0]>>4 != apduTypeComplexAck {
		return nil, newDecodeError("expected ComplexAck", frame)
	}
	if apdu[1] != fixedInvokeId {
		return nil, newDecodeError("unexpected invoke id", frame)
	}
	if apdu[2] != serviceReadPropertyMultiple {
		return nil, newDecodeError("unexpected service choice", frame)
	}

	c := newCursor(apdu[3:])
	state := newDeviceState()
	for !c.eof() {
		id, err := c.parseObjectIdentifier()
		if err != nil {
			return nil, err
		}
		results, err := c.parseListOfResults()
		if err != nil {
			return nil, err
		}
		state.append(id, results)
	}
	return state, nil
}

// DecodeWritePropertyResponse parses a SimpleAck acknowledging a
// WriteProperty request. There is no payload beyond the ack header.
func DecodeWritePropertyResponse(frame []byte) error {
	apdu, err := checkBVLC(frame, bvlcFunctionUnicast)
	if err != nil {
		return err
	}
	if apdu[0]>>4 != apduTypeSimpleAck {
		return newDecodeError("expected SimpleAck", frame)
	}
	if apdu[1] != fixedInvokeId {
		return newDecodeError("unexpected invoke id", frame)
	}
	if apdu[2] != serviceWriteProperty {
		return newDecodeError("unexpected service choice", frame)
	}
	return nil
}

// isDiscoveryResponse implements the discovery-response probe from the design:
// BVLC broadcast, UnconfirmedRequest, vendor id 7, service number 516.
// Source IP is the caller's concern; the body beyond the probed tags is
// ignored.
func isDiscoveryResponse(frame []byte) bool {
	apdu, err := checkBVLC(frame, bvlcFunctionBroadcast)
	if err != nil || len(apdu) < 2 {
		return false
	}
	if apdu[0]>>4 != apduTypeUnconfirmedRequest {
		return false
	}
	if apdu[1] != serviceUnconfirmedPrivateTransfer {
		return false
	}

	c := newCursor(apdu[2:])
	vendorTag, err := c.readTag()
	if err != nil || vendorTag.Class != tagClassContext || vendorTag.Number != 0 || vendorTag.LenOrType != 1 {
		return false
	}
	vendorID, err := c.readByte()
	if err != nil || vendorID != vendorIDSiemens {
		return false
	}

	svcTag, err := c.readTag()
	if err != nil || svcTag.Class != tagClassContext || svcTag.Number != 1 || svcTag.LenOrType != 2 {
		return false
	}
	svcBytes, err := c.readBytes(2)
	if err != nil {
		return false
	}
	svc := int(svcBytes[0])<<8 | int(svcBytes[1])
	return svc == discoveryServiceAck
}
