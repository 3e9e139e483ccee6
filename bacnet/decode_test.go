package bacnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameWithApdu(apdu []byte) []byte {
	return buildFrame(bvlcFunctionUnicast, npduControlNoReply, apdu)
}

func TestDecodeReadPropertyMultipleResponse_Enumerated(t *testing.T) {
	apdu := []byte{
		0x30, 0x01, 0x0e, // ComplexAck, invoke id 1, RPM
		0x0c, 0x04, 0xc0, 0x00, 0x2a, // object id MultiStateValue:42
		0x1e,       // list-of-results open(1)
		0x29, 0x55, // property wrapper tag2, PresentValue
		0x4e, 0x91, 0x03, 0x4f, // value open(4), app Enumerated len1 = 3, close(4)
		0x1f, // list-of-results close(1)
	}
	state, err := DecodeReadPropertyMultipleResponse(frameWithApdu(apdu))
	require.NoError(t, err)

	id := ObjectIdentifier{Type: MultiStateValue, InstanceId: 42}
	results, ok := state.Get(id)
	require.True(t, ok)
	require.Len(t, results, 1)
	assert.Equal(t, PresentValue, results[0].Property)
	assert.Equal(t, EnumeratedValue(3), results[0].Value)

	v, ok := state.Value(id, PresentValue)
	require.True(t, ok)
	assert.Equal(t, uint8(3), v.Enumerated)
}

func TestDecodeReadPropertyMultipleResponse_AccessErrorDoesNotDesync(t *testing.T) {
	apdu := []byte{
		0x30, 0x01, 0x0e,
		0x0c, 0x04, 0xc0, 0x00, 0x2a, // object id MultiStateValue:42
		0x1e, // list-of-results open(1)

		0x29, 0x55, // PresentValue
		0x4e, 0x21, 0x05, 0x4f, // Unsigned(5)

		0x29, 0x1c, // Description
		0x5e, 0x01, 0x02, 0x03, 0x04, 0x5f, // access-error open(5), 4 octets, close(5)

		0x1f, // list-of-results close(1)
	}
	state, err := DecodeReadPropertyMultipleResponse(frameWithApdu(apdu))
	require.NoError(t, err)

	id := ObjectIdentifier{Type: MultiStateValue, InstanceId: 42}
	results, ok := state.Get(id)
	require.True(t, ok)
	require.Len(t, results, 2)
	assert.Equal(t, PresentValue, results[0].Property)
	assert.Equal(t, KindUnsigned, results[0].Value.Kind)
	assert.Equal(t, Description, results[1].Property)
	assert.Equal(t, KindAccessError, results[1].Value.Kind)
}

func TestDecodeReadPropertyMultipleResponse_UnknownObjectType(t *testing.T) {
	apdu := []byte{
		0x30, 0x01, 0x0e,
		0x0c, 0xff, 0xff, 0xff, 0xff, // object type code 1023 (unused)
	}
	_, err := DecodeReadPropertyMultipleResponse(frameWithApdu(apdu))
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestDecodeReadPropertyMultipleResponse_WrongApduType(t *testing.T) {
	apdu := []byte{0x20, 0x01, 0x0e, 0, 0, 0}
	_, err := DecodeReadPropertyMultipleResponse(frameWithApdu(apdu))
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestDecodeWritePropertyResponse_SimpleAck(t *testing.T) {
	apdu := []byte{0x20, 0x01, 0x0f}
	err := DecodeWritePropertyResponse(frameWithApdu(apdu))
	assert.NoError(t, err)
}

func TestDecodeWritePropertyResponse_WrongServiceChoice(t *testing.T) {
	apdu := []byte{0x20, 0x01, 0x0e}
	err := DecodeWritePropertyResponse(frameWithApdu(apdu))
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestCheckBVLC_FrameTooShort(t *testing.T) {
	_, err := checkBVLC([]byte{0x81, 0x0a, 0x00, 0x04}, bvlcFunctionUnicast)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestReadEnumerated_RejectsNonByteWidth(t *testing.T) {
	c := newCursor([]byte{0x00, 0x01})
	_, err := c.readEnumerated(2)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestReadCharString_RejectsNonUTF8(t *testing.T) {
	c := newCursor([]byte{0x00, 0xff, 0xfe})
	_, err := c.readCharString(3)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestReadCharString_RejectsNonUTF8Encoding(t *testing.T) {
	c := newCursor([]byte{0x04, 'h', 'i'})
	_, err := c.readCharString(3)
	require.Error(t, err)
}

func TestIsDiscoveryResponse(t *testing.T) {
	blob := make([]byte, discoveryBlobLen)
	apdu := []byte{0x10, 0x04} // UnconfirmedRequest, service 4
	apdu = ctxTag(apdu, 0, 1)
	apdu = append(apdu, vendorIDSiemens)
	apdu = ctxTag(apdu, 1, 2)
	apdu = append(apdu, 0x02, 0x04) // service number 516
	apdu = append(apdu, blob...)

	frame := buildFrame(bvlcFunctionBroadcast, npduControlNoReply, apdu)
	assert.True(t, isDiscoveryResponse(frame))
}

func TestIsDiscoveryResponse_RejectsWrongServiceNumber(t *testing.T) {
	apdu := []byte{0x10, 0x04}
	apdu = ctxTag(apdu, 0, 1)
	apdu = append(apdu, vendorIDSiemens)
	apdu = ctxTag(apdu, 1, 2)
	apdu = append(apdu, 0x02, 0x03) // service number 515, a request not an ack

	frame := buildFrame(bvlcFunctionBroadcast, npduControlNoReply, apdu)
	assert.False(t, isDiscoveryResponse(frame))
}
