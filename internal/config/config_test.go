package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: "debug"
  format: "text"

mask:
  cthresh: 3
  mthresh: 0

restore:
  pattern: 2
  chroma_only: false

scan:
  workers: 4
  output_dir: "/tmp"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.Mask.CThresh)
	assert.Equal(t, 0, cfg.Mask.MThresh)
	assert.Equal(t, 2, cfg.Restore.Pattern)
	assert.False(t, cfg.Restore.ChromaOnly)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, "/tmp", cfg.Scan.OutputDir)
}

func TestLoadConfigDefaults(t *testing.T) {
	// A minimal file picks up every default
	cfg, err := Load(writeConfigFile(t, "logging:\n  level: info\n"))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 9090, cfg.Metrics.Port)

	assert.Equal(t, 6, cfg.Mask.CThresh)
	assert.Equal(t, 9, cfg.Mask.MThresh)
	assert.Equal(t, 0, cfg.Mask.Metric)
	assert.True(t, cfg.Mask.Expand)
	assert.Equal(t, 16, cfg.Mask.BlockSize)
	assert.Equal(t, 64, cfg.Mask.MI)

	assert.True(t, cfg.Vinverse.Enabled)
	assert.InDelta(t, 2.7, cfg.Vinverse.Strength, 1e-9)
	assert.Equal(t, 255, cfg.Vinverse.Limit)
	assert.InDelta(t, 0.25, cfg.Vinverse.Scale, 1e-9)
	assert.Equal(t, "v", cfg.Vinverse.Mode)

	assert.Equal(t, 0, cfg.Restore.Pattern)
	assert.True(t, cfg.Restore.ChromaOnly)
	assert.True(t, cfg.Restore.TFF)

	assert.Equal(t, 8, cfg.Scan.Workers)
	assert.Equal(t, float64(0), cfg.Scan.Rate)
	assert.Equal(t, 34, cfg.Scan.MinLength30p)
	assert.Equal(t, int64(2000), cfg.Scan.Threshold30p)
	assert.Equal(t, 60, cfg.Scan.MinLength60p)
	assert.Equal(t, ".", cfg.Scan.OutputDir)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CADENCE_MASK_CTHRESH", "12")
	t.Setenv("CADENCE_RESTORE_PATTERN", "3")

	cfg, err := Load(writeConfigFile(t, "logging:\n  level: info\n"))
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Mask.CThresh)
	assert.Equal(t, 3, cfg.Restore.Pattern)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "cthresh out of range",
			content: "mask:\n  cthresh: 300\n",
			errMsg:  "cthresh",
		},
		{
			name:    "bad vinverse mode",
			content: "vinverse:\n  mode: \"d\"\n",
			errMsg:  "mode",
		},
		{
			name:    "bad log level",
			content: "logging:\n  level: \"verbose\"\n",
			errMsg:  "log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
