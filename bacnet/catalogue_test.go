package bacnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllCoversDeclaredDescriptors(t *testing.T) {
	all := All()
	assert.NotEmpty(t, all)

	seen := make(map[ObjectIdentifier]bool)
	for _, d := range all {
		seen[d.ObjectIdentifier()] = true
	}
	assert.True(t, seen[ComfortButton.ObjectIdentifier()])
	assert.True(t, seen[VentilationModeProp.ObjectIdentifier()])
	assert.True(t, seen[AirFilterReplaceTimerReset.ObjectIdentifier()])
}

func TestComfortWritesUseComfortPriority(t *testing.T) {
	assert.Equal(t, uint8(comfortPriority), ComfortButton.Priority)
	assert.Equal(t, uint8(comfortPriority), VentilationModeProp.Priority)
	assert.Equal(t, uint8(comfortPriority), CookerHood.Priority)
}

func TestDeviceObjectReadsNameAndDescription(t *testing.T) {
	d := DeviceObject(5)
	assert.Equal(t, Device, d.ObjectType)
	assert.Equal(t, uint32(5), d.InstanceId)
	assert.ElementsMatch(t, []PropertyId{ObjectName, Description}, d.ReadValues)
}

func TestEnumStringers(t *testing.T) {
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "inactive", Inactive.String())
	assert.Equal(t, "Fireplace", OperationFireplace.String())
	assert.Equal(t, "High", VentilationHigh.String())
}
