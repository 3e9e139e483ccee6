package bacnet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeReadPropertyMultiple_DeviceObjectName(t *testing.T) {
	d := NewPropertyDescriptor(Device, 2).WithReadValues(ObjectName)
	frame := EncodeReadPropertyMultiple([]PropertyDescriptor{d})

	wantApdu, err := hex.DecodeString("000401" + "0e" + "0c02000002" + "1e" + "09" + "4d" + "1f")
	require.NoError(t, err)

	require.Equal(t, byte(bvlcType), frame[0])
	require.Equal(t, byte(bvlcFunctionUnicast), frame[1])
	require.Equal(t, byte(npduVersion), frame[4])
	require.Equal(t, byte(npduControlExpectReply), frame[5])
	assert.Equal(t, wantApdu, frame[6:])
	assert.Equal(t, len(frame), int(frame[2])<<8|int(frame[3]))
}

func TestEncodeWriteProperty_VentilationMode(t *testing.T) {
	frame := EncodeWriteProperty(VentilationModeProp, UnsignedValue(3))

	wantApdu, err := hex.DecodeString(
		"0004010f" + // header: confirmed-request, invoke id 1, WriteProperty
			"0c04c0002a" + // object id ctx-tag0 len4: (19<<22)|42
			"1955" + // ctx-tag1 len1 = PresentValue (85)
			"3e" + // ctx-open 3
			"2103" + // application tag UnsignedInt len1, value 3
			"3f" + // ctx-close 3
			"490d", // ctx-tag4 len1, priority 13
	)
	require.NoError(t, err)

	apdu := frame[6:]
	assert.Equal(t, wantApdu, apdu)
}

func TestEncodeDiscoveryRequest_PreservesBlobAndAppendsTag(t *testing.T) {
	blob := make([]byte, discoveryBlobLen)
	for i := range blob {
		blob[i] = byte(i)
	}
	tag := []byte{0xaa, 0xbb}

	full := append(append([]byte(nil), blob...), tag...)
	req := EncodeDiscoveryRequest(full)
	apdu := req[6:]

	// Fixed 7-octet header (apdu type+service, vendor tag+id, service tag+
	// number) plus the context-2 opening tag precede the payload.
	const payloadStart = 8
	payload := apdu[payloadStart : payloadStart+len(full)]
	assert.Equal(t, blob, payload[:discoveryBlobLen])
	assert.Equal(t, tag, payload[discoveryBlobLen:])

	require.Equal(t, byte(bvlcType), req[0])
	require.Equal(t, byte(bvlcFunctionBroadcast), req[1])
	require.Equal(t, byte(npduControlNoReply), req[5])
}
