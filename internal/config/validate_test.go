package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
			Port:    9090,
		},
		Mask: MaskConfig{
			CThresh:   6,
			MThresh:   9,
			Metric:    0,
			Expand:    true,
			BlockSize: 16,
			MI:        64,
		},
		Vinverse: VinverseConfig{
			Enabled:  true,
			Strength: 2.7,
			Limit:    255,
			Scale:    0.25,
			Mode:     "v",
		},
		Restore: RestoreConfig{
			Pattern:    0,
			ChromaOnly: true,
			TFF:        true,
		},
		Scan: ScanConfig{
			Workers:      8,
			MinLength30p: 34,
			Threshold30p: 2000,
			MinLength60p: 60,
			OutputDir:    ".",
		},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("section errors carry the section name", func(t *testing.T) {
		cfg := validConfig()
		cfg.Mask.CThresh = -1

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "mask config")
	})
}

func TestLoggingConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  LoggingConfig
		wantErr bool
	}{
		{
			name:    "stdout output",
			config:  LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
			wantErr: false,
		},
		{
			name:    "invalid level",
			config:  LoggingConfig{Level: "loud", Format: "json", Output: "stdout"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  LoggingConfig{Level: "info", Format: "xml", Output: "stdout"},
			wantErr: true,
		},
		{
			name: "file output needs positive max_size",
			config: LoggingConfig{
				Level: "info", Format: "json", Output: "/var/log/cadence.log",
				MaxSize: 0,
			},
			wantErr: true,
		},
		{
			name: "file output with rotation settings",
			config: LoggingConfig{
				Level: "info", Format: "json", Output: "/var/log/cadence.log",
				MaxSize: 100, MaxBackups: 5, MaxAge: 30,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMetricsConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  MetricsConfig
		wantErr bool
	}{
		{
			name:    "disabled skips checks",
			config:  MetricsConfig{Enabled: false},
			wantErr: false,
		},
		{
			name:    "invalid port",
			config:  MetricsConfig{Enabled: true, Path: "/metrics", Port: 70000},
			wantErr: true,
		},
		{
			name:    "empty path",
			config:  MetricsConfig{Enabled: true, Path: "", Port: 9090},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMaskConfigValidation(t *testing.T) {
	valid := MaskConfig{CThresh: 6, MThresh: 9, Metric: 0, BlockSize: 16, MI: 64}

	tests := []struct {
		name    string
		mutate  func(*MaskConfig)
		wantErr bool
	}{
		{
			name:    "defaults pass",
			mutate:  func(m *MaskConfig) {},
			wantErr: false,
		},
		{
			name:    "metric out of domain",
			mutate:  func(m *MaskConfig) { m.Metric = 2 },
			wantErr: true,
		},
		{
			name:    "cthresh above metric 0 bound",
			mutate:  func(m *MaskConfig) { m.CThresh = 256 },
			wantErr: true,
		},
		{
			name: "metric 1 widens the cthresh bound",
			mutate: func(m *MaskConfig) {
				m.Metric = 1
				m.CThresh = 10000
			},
			wantErr: false,
		},
		{
			name: "metric 1 still bounds cthresh",
			mutate: func(m *MaskConfig) {
				m.Metric = 1
				m.CThresh = 65026
			},
			wantErr: true,
		},
		{
			name:    "negative mthresh",
			mutate:  func(m *MaskConfig) { m.MThresh = -1 },
			wantErr: true,
		},
		{
			name:    "mthresh above range",
			mutate:  func(m *MaskConfig) { m.MThresh = 256 },
			wantErr: true,
		},
		{
			name:    "zero block size",
			mutate:  func(m *MaskConfig) { m.BlockSize = 0 },
			wantErr: true,
		},
		{
			name:    "zero mi",
			mutate:  func(m *MaskConfig) { m.MI = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVinverseConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  VinverseConfig
		wantErr bool
	}{
		{
			name:    "disabled skips checks",
			config:  VinverseConfig{Enabled: false, Mode: "bogus"},
			wantErr: false,
		},
		{
			name:    "invalid mode",
			config:  VinverseConfig{Enabled: true, Strength: 2.7, Limit: 255, Scale: 0.25, Mode: "x"},
			wantErr: true,
		},
		{
			name:    "negative strength",
			config:  VinverseConfig{Enabled: true, Strength: -1, Limit: 255, Scale: 0.25, Mode: "v"},
			wantErr: true,
		},
		{
			name:    "negative scale",
			config:  VinverseConfig{Enabled: true, Strength: 2.7, Limit: 255, Scale: -0.1, Mode: "v"},
			wantErr: true,
		},
		{
			name:    "limit above range",
			config:  VinverseConfig{Enabled: true, Strength: 2.7, Limit: 256, Scale: 0.25, Mode: "v"},
			wantErr: true,
		},
		{
			name:    "zero limit disables the pass but stays valid",
			config:  VinverseConfig{Enabled: true, Strength: 2.7, Limit: 0, Scale: 0.25, Mode: "hv"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScanConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  ScanConfig
		wantErr bool
	}{
		{
			name:    "zero workers fall back to the pool default",
			config:  ScanConfig{Workers: 0, OutputDir: "."},
			wantErr: false,
		},
		{
			name:    "negative workers",
			config:  ScanConfig{Workers: -1, OutputDir: "."},
			wantErr: true,
		},
		{
			name:    "negative rate",
			config:  ScanConfig{Rate: -5, OutputDir: "."},
			wantErr: true,
		},
		{
			name:    "negative threshold",
			config:  ScanConfig{Threshold30p: -1, OutputDir: "."},
			wantErr: true,
		},
		{
			name:    "empty output dir",
			config:  ScanConfig{OutputDir: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
