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
	"encoding/hex"
	"errors"
	"fmt"
)

// Sentinel errors wrapped inside TransportError; callers match with
// errors.Is against the TransportError itself or unwrap to these.
var (
	ErrTimeout        = errors.New("bacnet: timed out waiting for response")
	ErrConnectionLost = errors.New("bacnet: connection lost")
)

// TransportError reports a socket-level failure: open/send/recv error,
// connection lost, or the receive timeout (1 second by default). The
// library never retries; the caller decides retry policy.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bacnet: transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func newTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// DecodeError reports any violation of the expected wire shape: wrong
// BVLC type/function, wrong APDU type, wrong invoke id, wrong service
// choice, unexpected tag, unexpected EOF, unsupported float width,
// unsupported string encoding, invalid UTF-8, or an unknown object-type
// code (the error-handling design). Payload carries the offending bytes for diagnostics.
type DecodeError struct {
	Reason  string
	Payload []byte
}

func (e *DecodeError) Error() string {
	if len(e.Payload) == 0 {
		return fmt.Sprintf("bacnet: decode error: %s", e.Reason)
	}
	return fmt.Sprintf("bacnet: decode error: %s (payload=%s)", e.Reason, hex.EncodeToString(e.Payload))
}

func newDecodeError(reason string, payload []byte) *DecodeError {
	return &DecodeError{Reason: reason, Payload: payload}
}

// InvalidArgument reports caller-side misuse at the façade layer (e.g. a
// comfort-button delay or fireplace/rapid duration outside its valid
// range). The core performs no range validation of its own; only package
// device raises this.
type InvalidArgument struct {
	Field  string
	Reason string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("bacnet: invalid argument %s: %s", e.Field, e.Reason)
}

// NewInvalidArgument is exported so the façade package can raise it
// without the core exposing range-validation helpers of its own.
func NewInvalidArgument(field, reason string) *InvalidArgument {
	return &InvalidArgument{Field: field, Reason: reason}
}

// IsTimeout reports whether err is a TransportError caused by the
// receive timeout.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && errors.Is(te.Err, ErrTimeout)
}

// IsTransportError reports whether err originated in the transport layer
// rather than the decoder or the façade.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsDecodeError reports whether err is a wire-shape violation.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
