package bacnet

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overridesYAML = `
registers:
  - name: co2_level
    object_type: 2
    instance: 9001
    property: 85
`

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overridesYAML), 0o644))

	entries, err := LoadOverrides(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "co2_level", entries[0].Name)
	assert.Equal(t, AnalogValue, entries[0].ObjectType)
	assert.Equal(t, uint32(9001), entries[0].InstanceId)
	assert.Equal(t, PresentValue, entries[0].Property)
}

func TestLoadOverrides_RejectsUnknownObjectType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("registers:\n  - name: bad\n    object_type: 200\n    instance: 1\n    property: 85\n"), 0o644))

	_, err := LoadOverrides(path)
	assert.Error(t, err)
}

func TestWatchOverrides_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overridesYAML), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry, err := WatchOverrides(ctx, path, nil)
	require.NoError(t, err)
	require.Len(t, registry.Descriptors(), 1)

	updated := overridesYAML + "  - name: humidity\n    object_type: 0\n    instance: 10\n    property: 85\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		return len(registry.Descriptors()) == 2
	}, 2*time.Second, 20*time.Millisecond)

	names := registry.Names()
	assert.Contains(t, names, "co2_level")
	assert.Contains(t, names, "humidity")
}
