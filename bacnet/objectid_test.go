package bacnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectIdentifierPackRoundTrip(t *testing.T) {
	id := ObjectIdentifier{Type: MultiStateValue, InstanceId: 42}
	assert.Equal(t, uint32(0x04c0002a), id.Pack())

	got, err := unpackObjectIdentifier(id.Pack())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestUnpackObjectIdentifier_UnknownType(t *testing.T) {
	_, err := unpackObjectIdentifier(uint32(63) << 22)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestObjectIdentifierString(t *testing.T) {
	id := ObjectIdentifier{Type: Device, InstanceId: 2}
	assert.Equal(t, "device:2", id.String())
}

func TestWriteKindForSelectionRule(t *testing.T) {
	assert.Equal(t, WriteReal, writeKindFor(AnalogValue))
	assert.Equal(t, WriteEnumerated, writeKindFor(BinaryValue))
	assert.Equal(t, WriteUnsignedInt, writeKindFor(MultiStateValue))
	assert.Equal(t, WriteUnsignedInt, writeKindFor(PositiveIntegerValue))
}
