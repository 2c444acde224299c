// Package config provides configuration loading and validation for the
// lookup3 command-line tool.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/lookup3/pkg/alg/lookup3"
	"github.com/Sumatoshi-tech/lookup3/pkg/units"
)

// Sentinel validation errors.
var (
	ErrInvalidStrategy    = errors.New("invalid hash strategy")
	ErrInvalidBloomBits   = errors.New("bloom bit count must be a positive multiple of 8")
	ErrBloomTooLarge      = errors.New("bloom bit count exceeds max size")
	ErrInvalidBloomHashes = errors.New("bloom hash count out of range")
	ErrInvalidMaxSize     = errors.New("invalid bloom max size")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidSampleRatio = errors.New("trace sample ratio must be within [0, 1]")
)

const (
	// envPrefix namespaces environment overrides, e.g. LOOKUP3_HASH_SEED.
	envPrefix = "LOOKUP3"

	// configName is the config file base name searched in the config paths.
	configName = "lookup3"
)

// Config holds all configuration for the lookup3 tool.
type Config struct {
	Hash      HashConfig      `mapstructure:"hash"`
	Bloom     BloomConfig     `mapstructure:"bloom"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// HashConfig holds the default seeds and read strategy for hash commands.
type HashConfig struct {
	Strategy  string `mapstructure:"strategy"`
	Seed      uint32 `mapstructure:"seed"`
	Secondary uint32 `mapstructure:"secondary"`
}

// BloomConfig holds approximate-set sizing.
type BloomConfig struct {
	// MaxSize caps the bit vector size, e.g. "64MiB".
	MaxSize string `mapstructure:"max_size"`
	Bits    uint   `mapstructure:"bits"`
	Hashes  uint   `mapstructure:"hashes"`
	Seed    uint32 `mapstructure:"seed"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry export settings. An empty endpoint
// disables export.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	Environment  string  `mapstructure:"environment"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches for lookup3.yaml in the working directory,
// ./config and /etc/lookup3; a missing file there is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/lookup3")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("hash.strategy", DefaultHashStrategy)
	viperCfg.SetDefault("hash.seed", DefaultHashSeed)
	viperCfg.SetDefault("hash.secondary", DefaultHashSecondary)

	viperCfg.SetDefault("bloom.bits", DefaultBloomBits)
	viperCfg.SetDefault("bloom.hashes", DefaultBloomHashes)
	viperCfg.SetDefault("bloom.seed", DefaultBloomSeed)
	viperCfg.SetDefault("bloom.max_size", DefaultBloomMaxSize)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.environment", "")
	viperCfg.SetDefault("telemetry.sample_ratio", 0.0)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	_, err := lookup3.ParseStrategy(config.Hash.Strategy)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStrategy, err)
	}

	err = validateBloom(&config.Bloom)
	if err != nil {
		return err
	}

	_, err = parseLevel(config.Logging.Level)
	if err != nil {
		return err
	}

	switch config.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, config.Telemetry.SampleRatio)
	}

	return nil
}

func validateBloom(bloomCfg *BloomConfig) error {
	if bloomCfg.Bits == 0 || bloomCfg.Bits%units.BitsPerByte != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBloomBits, bloomCfg.Bits)
	}

	if bloomCfg.Hashes == 0 || bloomCfg.Hashes > MaxBloomHashes {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidBloomHashes, bloomCfg.Hashes, MaxBloomHashes)
	}

	maxBytes, err := humanize.ParseBytes(bloomCfg.MaxSize)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidMaxSize, bloomCfg.MaxSize, err)
	}

	if uint64(units.BytesForBits(bloomCfg.Bits)) > maxBytes {
		return fmt.Errorf("%w: %d bits > %s", ErrBloomTooLarge, bloomCfg.Bits, bloomCfg.MaxSize)
	}

	return nil
}

// HashStrategy returns the configured read strategy. It assumes the config
// passed validation and falls back to StrategyAuto otherwise.
func (c *Config) HashStrategy() lookup3.Strategy {
	strategy, err := lookup3.ParseStrategy(c.Hash.Strategy)
	if err != nil {
		return lookup3.StrategyAuto
	}

	return strategy
}

// SlogLevel returns the configured level as an [slog.Level], defaulting to
// info for unrecognized names.
func (l LoggingConfig) SlogLevel() slog.Level {
	level, err := parseLevel(l.Level)
	if err != nil {
		return slog.LevelInfo
	}

	return level
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(name))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}

	return level, nil
}
