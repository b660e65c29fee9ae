package config

import (
	"fmt"
)

func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	if err := c.Mask.Validate(); err != nil {
		return fmt.Errorf("mask config: %w", err)
	}

	if err := c.Vinverse.Validate(); err != nil {
		return fmt.Errorf("vinverse config: %w", err)
	}

	if err := c.Scan.Validate(); err != nil {
		return fmt.Errorf("scan config: %w", err)
	}

	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"panic": true,
		"fatal": true,
		"error": true,
		"warn":  true,
		"info":  true,
		"debug": true,
		"trace": true,
	}

	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	if l.Format != "json" && l.Format != "text" {
		return fmt.Errorf("log format must be 'json' or 'text'")
	}

	if l.Output != "stdout" && l.Output != "stderr" {
		// If it's a file path, rotation settings must make sense
		if l.MaxSize <= 0 {
			return fmt.Errorf("max_size must be positive for file output")
		}
		if l.MaxBackups < 0 {
			return fmt.Errorf("max_backups cannot be negative")
		}
		if l.MaxAge < 0 {
			return fmt.Errorf("max_age cannot be negative")
		}
	}

	return nil
}

func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.Port < 1 || m.Port > 65535 {
			return fmt.Errorf("invalid metrics port: %d", m.Port)
		}

		if m.Path == "" {
			return fmt.Errorf("metrics path cannot be empty")
		}
	}

	return nil
}

// Validate mirrors the mask kernel's own parameter domains so a bad
// config fails at load time rather than at the first frame.
func (m *MaskConfig) Validate() error {
	if m.Metric != 0 && m.Metric != 1 {
		return fmt.Errorf("metric must be 0 or 1, got %d", m.Metric)
	}

	maxCThresh := 255
	if m.Metric == 1 {
		maxCThresh = 65025
	}
	if m.CThresh < 0 || m.CThresh > maxCThresh {
		return fmt.Errorf("cthresh must be between 0 and %d for metric %d, got %d",
			maxCThresh, m.Metric, m.CThresh)
	}

	if m.MThresh < 0 || m.MThresh > 255 {
		return fmt.Errorf("mthresh must be between 0 and 255, got %d", m.MThresh)
	}

	if m.BlockSize < 1 || m.BlockSize > 255 {
		return fmt.Errorf("block_size must be between 1 and 255, got %d", m.BlockSize)
	}

	if m.MI < 1 {
		return fmt.Errorf("mi must be positive, got %d", m.MI)
	}

	return nil
}

func (v *VinverseConfig) Validate() error {
	if !v.Enabled {
		return nil
	}

	if v.Mode != "v" && v.Mode != "h" && v.Mode != "hv" {
		return fmt.Errorf("mode must be 'v', 'h' or 'hv', got %q", v.Mode)
	}

	if v.Strength < 0 {
		return fmt.Errorf("strength cannot be negative")
	}

	if v.Scale < 0 {
		return fmt.Errorf("scale cannot be negative")
	}

	if v.Limit > 255 {
		return fmt.Errorf("limit must be at most 255, got %d", v.Limit)
	}

	return nil
}

func (s *ScanConfig) Validate() error {
	if s.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}

	if s.Rate < 0 {
		return fmt.Errorf("rate cannot be negative")
	}

	if s.MinLength30p < 0 {
		return fmt.Errorf("min_length_30p cannot be negative")
	}

	if s.Threshold30p < 0 {
		return fmt.Errorf("threshold_30p cannot be negative")
	}

	if s.MinLength60p < 0 {
		return fmt.Errorf("min_length_60p cannot be negative")
	}

	if s.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	return nil
}
