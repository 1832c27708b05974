package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 50.0, cfg.Engine.MassFlow)
	assert.Equal(t, 18.0, cfg.Engine.PressureRatio)
	assert.Equal(t, 288.15, cfg.Ambient.Temperature)
	assert.Equal(t, "pressure_ratio", cfg.Sweep.Variable)
	assert.NoError(t, cfg.Engine.Validate())
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")

	cfg := DefaultConfig()
	cfg.Engine.PressureRatio = 25.0
	cfg.Ambient.Temperature = 250.0
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25.0, loaded.Engine.PressureRatio)
	assert.Equal(t, 250.0, loaded.Ambient.Temperature)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 0.88, loaded.Engine.CompressorEff)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("baseline")
	require.NotNil(t, cfg)
	assert.Equal(t, 18.0, cfg.Engine.PressureRatio)

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Engine.Validate(), name)
		assert.NoError(t, cfg.Ambient.State().Validate(), name)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	assert.Contains(t, names, "baseline")
	assert.Contains(t, names, "cruise")
	assert.True(t, sortedStrings(names))
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}
