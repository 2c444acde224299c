package config

import (
	"github.com/Sumatoshi-tech/lookup3/pkg/alg/bloom"
	"github.com/Sumatoshi-tech/lookup3/pkg/units"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Hash defaults.
const (
	DefaultHashStrategy  = "auto"
	DefaultHashSeed      = 0
	DefaultHashSecondary = 0
)

// Bloom defaults. The default vector is one KiB of bits.
const (
	DefaultBloomBits    = 8 * units.KiB
	DefaultBloomHashes  = 7
	DefaultBloomSeed    = 0
	DefaultBloomMaxSize = "64MiB"

	// MaxBloomHashes bounds the positions per value.
	MaxBloomHashes = bloom.MaxHashes
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatText
)
