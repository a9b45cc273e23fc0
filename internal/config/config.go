// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Scan     ScanConfig     `yaml:"scan" mapstructure:"scan"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Estimate EstimateConfig `yaml:"estimate" mapstructure:"estimate"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourceConfig describes the regulatory database frontend.
type SourceConfig struct {
	// BaseURL is expanded with a region code via %s.
	BaseURL      string            `yaml:"base_url" mapstructure:"base_url"`
	Regions      map[string]string `yaml:"regions" mapstructure:"regions"`
	UserAgent    string            `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int               `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries   int               `yaml:"max_retries" mapstructure:"max_retries"`
	LegendMarker string            `yaml:"legend_marker" mapstructure:"legend_marker"`
	DataStart    string            `yaml:"data_start" mapstructure:"data_start"`
	DataEnd      string            `yaml:"data_end" mapstructure:"data_end"`
}

// ScanConfig holds default scan filters.
type ScanConfig struct {
	BandMinMHz float64 `yaml:"band_min_mhz" mapstructure:"band_min_mhz"`
	BandMaxMHz float64 `yaml:"band_max_mhz" mapstructure:"band_max_mhz"`
}

// CacheConfig configures the fetched-document cache.
type CacheConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// EstimateConfig configures range estimation.
type EstimateConfig struct {
	RxSensitivityDBM float64 `yaml:"rx_sensitivity_dbm" mapstructure:"rx_sensitivity_dbm"`
	DefaultPowerDBW  float64 `yaml:"default_power_dbw" mapstructure:"default_power_dbw"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WINDTOWER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.base_url", "https://sd.ic.gc.ca/pls/engdoc_anon/sd_licences.dump?region=%s")
	v.SetDefault("source.regions", map[string]string{
		"ON": "Ontario",
		"QC": "Quebec",
		"BC": "British Columbia",
		"AB": "Alberta",
		"MB": "Manitoba",
		"NS": "Nova Scotia",
	})
	v.SetDefault("source.user_agent", "windtower/1.0 (tower survey; non-commercial)")
	v.SetDefault("source.timeout_secs", 60)
	v.SetDefault("source.max_retries", 3)
	v.SetDefault("source.legend_marker", "Legend")
	v.SetDefault("source.data_start", "[DATA]")
	v.SetDefault("source.data_end", "[/DATA]")
	v.SetDefault("scan.band_min_mhz", 3400)
	v.SetDefault("scan.band_max_mhz", 3700)
	v.SetDefault("cache.path", "windtower-cache.db")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("estimate.rx_sensitivity_dbm", -85)
	v.SetDefault("estimate.default_power_dbw", 10)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
