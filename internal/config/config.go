package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Mask     MaskConfig     `mapstructure:"mask"`
	Vinverse VinverseConfig `mapstructure:"vinverse"`
	Restore  RestoreConfig  `mapstructure:"restore"`
	Scan     ScanConfig     `mapstructure:"scan"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`     // json or text
	Output     string `mapstructure:"output"`     // stdout, stderr, or file path
	MaxSize    int    `mapstructure:"max_size"`   // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Port    int    `mapstructure:"port"`
}

type MaskConfig struct {
	CThresh   int  `mapstructure:"cthresh"`    // Spatial combing threshold
	MThresh   int  `mapstructure:"mthresh"`    // Motion threshold, 0 disables motion masking
	Metric    int  `mapstructure:"metric"`     // 0 (neighborhood) or 1 (product)
	Expand    bool `mapstructure:"expand"`     // Horizontal mask dilation
	BlockSize int  `mapstructure:"block_size"` // Detector window side
	MI        int  `mapstructure:"mi"`         // Flagged pixels per window for a combed verdict
}

type VinverseConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	Strength float64 `mapstructure:"strength"`
	Limit    int     `mapstructure:"limit"` // Max per-pixel change, 255 unrestricted
	Scale    float64 `mapstructure:"scale"`
	Mode     string  `mapstructure:"mode"` // v, h or hv
}

type RestoreConfig struct {
	Pattern    int  `mapstructure:"pattern"` // First frame of a clean-combed-combed-clean-clean sequence
	ChromaOnly bool `mapstructure:"chroma_only"`
	TFF        bool `mapstructure:"tff"`
}

type ScanConfig struct {
	Workers      int     `mapstructure:"workers"`
	Rate         float64 `mapstructure:"rate"` // Frame evaluations per second, 0 unlimited
	MinLength30p int     `mapstructure:"min_length_30p"`
	Threshold30p int64   `mapstructure:"threshold_30p"`
	MinLength60p int     `mapstructure:"min_length_60p"`
	OutputDir    string  `mapstructure:"output_dir"` // Where bookmark files land
}

func Load(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(configPath)

	// Environment variable override
	viper.SetEnvPrefix("CADENCE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 5)
	viper.SetDefault("logging.max_age", 30)

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
	viper.SetDefault("metrics.port", 9090)

	// Mask defaults, the historical comb detector settings
	viper.SetDefault("mask.cthresh", 6)
	viper.SetDefault("mask.mthresh", 9)
	viper.SetDefault("mask.metric", 0)
	viper.SetDefault("mask.expand", true)
	viper.SetDefault("mask.block_size", 16)
	viper.SetDefault("mask.mi", 64)

	// Vinverse defaults
	viper.SetDefault("vinverse.enabled", true)
	viper.SetDefault("vinverse.strength", 2.7)
	viper.SetDefault("vinverse.limit", 255)
	viper.SetDefault("vinverse.scale", 0.25)
	viper.SetDefault("vinverse.mode", "v")

	// Restore defaults
	viper.SetDefault("restore.pattern", 0)
	viper.SetDefault("restore.chroma_only", true)
	viper.SetDefault("restore.tff", true)

	// Scan defaults
	viper.SetDefault("scan.workers", 8)
	viper.SetDefault("scan.rate", 0)
	viper.SetDefault("scan.min_length_30p", 34)
	viper.SetDefault("scan.threshold_30p", 2000)
	viper.SetDefault("scan.min_length_60p", 60)
	viper.SetDefault("scan.output_dir", ".")
}
