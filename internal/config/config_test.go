package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wifi-finder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, -50, cfg.Rules.ProximityThreshold)
	assert.Equal(t, -60, cfg.Rules.HiddenThreshold)
	assert.Equal(t, "<hidden>", cfg.Rules.HiddenName)
	assert.Len(t, cfg.Rules.HotspotTokens, 13)
	assert.Equal(t, 4, cfg.Throttle.MaxScans)
	assert.Equal(t, 2*time.Minute, cfg.Throttle.Window)
	assert.True(t, cfg.Tracking.Vibration)
}

func TestDefaultRulesAreCopies(t *testing.T) {
	r := DefaultRules()
	r.HotspotTokens[0] = "mutated"
	assert.Equal(t, "android", DefaultRules().HotspotTokens[0])
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
throttle:
  window: 30s
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Throttle.Window)
	assert.Equal(t, 4, cfg.Throttle.MaxScans)
	assert.Equal(t, DefaultHotspotTokens, cfg.Rules.HotspotTokens)
}

func TestLoadReplacesTokens(t *testing.T) {
	path := writeConfig(t, `
rules:
  hotspot_tokens: [" Galaxy ", "TETHER"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"galaxy", "tether"}, cfg.Rules.HotspotTokens)
	assert.Equal(t, -50, cfg.Rules.ProximityThreshold)
}

func TestLoadEmptyTokenListDisablesPatternRule(t *testing.T) {
	path := writeConfig(t, `
rules:
  hotspot_tokens: []
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Rules.HotspotTokens)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero scans", "throttle:\n  max_scans: 0\n"},
		{"negative window", "throttle:\n  window: -1s\n"},
		{"positive threshold", "rules:\n  proximity_threshold: 10\n"},
		{"hidden threshold too low", "rules:\n  hidden_threshold: -200\n"},
		{"empty token", "rules:\n  hotspot_tokens: [\"\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(writeConfig(t, "   \n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
