package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/seismo/internal/slowness"
	"github.com/san-kum/seismo/internal/velocity"
)

func snapshot(t *testing.T, vm *velocity.Model) *Snapshot {
	t.Helper()
	m, err := slowness.New(vm, slowness.DefaultParams())
	require.NoError(t, err)
	return NewSnapshot(vm.Name, m)
}

func TestNewSnapshot(t *testing.T) {
	snap := snapshot(t, velocity.LowVelocityZone())

	assert.Equal(t, "lvz", snap.Model)
	assert.Equal(t, velocity.EarthRadius, snap.Radius)
	assert.Len(t, snap.SLayers, len(snap.PLayers))
	assert.Len(t, snap.HighSlownessP, 1)
	assert.Equal(t, snap.PLayers, snap.Layers(slowness.P))
	assert.Equal(t, snap.SLayers, snap.Layers(slowness.S))
}

func TestMsgpackRoundTrip(t *testing.T) {
	snap := snapshot(t, velocity.FluidLayer())

	var buf bytes.Buffer
	require.NoError(t, WriteMsgpack(&buf, snap))

	got, err := ReadMsgpack(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap.PLayers, got.PLayers)
	assert.Equal(t, snap.CriticalDepths, got.CriticalDepths)
	assert.Equal(t, snap.FluidZones, got.FluidZones)
	assert.Equal(t, snap.Params, got.Params)
}

func TestReadMsgpackGarbage(t *testing.T) {
	_, err := ReadMsgpack(strings.NewReader("\xc1not msgpack"))
	assert.Error(t, err)
}

func TestWriteJSONFile(t *testing.T) {
	snap := snapshot(t, velocity.TwoLayer())
	path := filepath.Join(t.TempDir(), "two-layer.json")

	require.NoError(t, WriteJSONFile(path, snap))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, snap.CriticalDepths, got.CriticalDepths)
	assert.Equal(t, snap.SLayers, got.SLayers)
	assert.Contains(t, string(data), `"critical_depths"`)
}

func TestProfileSVG(t *testing.T) {
	snap := snapshot(t, velocity.TwoLayer())

	svg := ProfileSVG(snap, 400, 300)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 2, strings.Count(svg, "<path"))
	assert.Equal(t, len(snap.CriticalDepths), strings.Count(svg, "<line"))

	assert.Empty(t, ProfileSVG(nil, 400, 300))
	assert.Empty(t, ProfileSVG(&Snapshot{}, 400, 300))
}
