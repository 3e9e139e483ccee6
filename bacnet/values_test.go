package bacnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyValueString(t *testing.T) {
	assert.Equal(t, "7", UnsignedValue(7).String())
	assert.Equal(t, "presentValue", PresentValue.String())
	assert.Equal(t, "hello", StringValue("hello").String())
	assert.Equal(t, "<access-error>", AccessErrorValue().String())
}

func TestDeviceStateOrderAndLookup(t *testing.T) {
	s := newDeviceState()
	devA := ObjectIdentifier{Type: AnalogInput, InstanceId: 1}
	devB := ObjectIdentifier{Type: AnalogInput, InstanceId: 2}

	s.append(devA, []PropertyResult{{Property: PresentValue, Value: RealValue(21.5)}})
	s.append(devB, []PropertyResult{{Property: PresentValue, Value: RealValue(18.0)}})

	assert.Equal(t, []ObjectIdentifier{devA, devB}, s.Objects())

	v, ok := s.Value(devA, PresentValue)
	assert.True(t, ok)
	assert.Equal(t, float32(21.5), v.Real)

	_, ok = s.Value(devA, Description)
	assert.False(t, ok)
}

func TestDescriptorDefaultsToPresentValue(t *testing.T) {
	d := NewPropertyDescriptor(AnalogInput, 1)
	assert.Equal(t, []PropertyId{PresentValue}, d.ReadValues)
	assert.Equal(t, uint8(0), d.Priority)
}
