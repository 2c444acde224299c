// Package safeconv provides checked conversions for seeds, words and counts
// arriving from flags, config files and metrics.
package safeconv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrOutOfRange is returned when a parsed value does not fit in 32 bits.
var ErrOutOfRange = errors.New("value out of uint32 range")

// MaxInt is the maximum value for int type (platform-dependent).
const MaxInt = int(^uint(0) >> 1)

// MaxUint32 is the maximum value for uint32 type.
const MaxUint32 = uint32(math.MaxUint32)

// ParseUint32 parses a 32-bit unsigned value. Decimal, 0x hex, 0o octal and
// 0b binary literals are accepted, with optional underscores.
func ParseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}

	if v > uint64(MaxUint32) {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}

	return uint32(v), nil
}

// ParseWords parses each field as a 32-bit word with ParseUint32.
func ParseWords(fields []string) ([]uint32, error) {
	words := make([]uint32, 0, len(fields))

	for i, field := range fields {
		w, err := ParseUint32(field)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}

		words = append(words, w)
	}

	return words, nil
}

// MustIntToUint converts int to uint, panics if negative.
// Use only when negative values are logically impossible.
func MustIntToUint(v int) uint {
	if v < 0 {
		panic("safeconv: negative int to uint conversion")
	}

	return uint(v)
}

// SafeInt64 converts v to int64, clamping at math.MaxInt64.
func SafeInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(v)
}
