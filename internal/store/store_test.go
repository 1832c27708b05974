package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mericsson/turbocycle/internal/cycle"
	"github.com/mericsson/turbocycle/internal/gas"
	"github.com/mericsson/turbocycle/internal/sweep"
)

func runSweep(t *testing.T) (cycle.Config, cycle.State, *sweep.Result) {
	t.Helper()

	cfg := cycle.DefaultConfig()
	ambient := cycle.State{Temperature: gas.SeaLevelTemperature, Pressure: gas.SeaLevelPressure}

	result, err := sweep.New(cfg, ambient).Run(
		context.Background(), sweep.PressureRatio, sweep.Linspace(12, 30, 4))
	require.NoError(t, err)

	return cfg, ambient, result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg, ambient, result := runSweep(t)

	runID, err := st.Save(cfg, ambient, result)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)

	assert.Equal(t, "pressure_ratio", meta.Variable)
	assert.Equal(t, 4, meta.Points)
	assert.Equal(t, 0, meta.Failed)
	assert.Equal(t, 18.0, meta.Engine.PressureRatio)
	assert.Equal(t, 288.15, meta.AmbientT)

	values, points, err := st.LoadPoints(runID)
	require.NoError(t, err)
	require.Len(t, values, 4)
	require.Len(t, points, 4)

	assert.InDelta(t, 12.0, values[0], 1e-6)
	assert.InDelta(t, 30.0, values[3], 1e-6)
	assert.Greater(t, points[0]["thrust_N"], 0.0)
	assert.Contains(t, points[0], "specific_impulse_s")
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	cfg, ambient, result := runSweep(t)
	_, err = st.Save(cfg, ambient, result)
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	cfg, ambient, result := runSweep(t)
	runID, err := st.Save(cfg, ambient, result)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, runID, "metadata.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, runID, "points.csv"))
	assert.NoError(t, err)
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg, ambient, result := runSweep(t)
	runID, err := st.Save(cfg, ambient, result)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportJSON(&buf, runID))

	var exported Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))
	assert.Equal(t, runID, exported.Meta.ID)
	assert.Len(t, exported.Points, 4)
}
