package lookup3

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// Strategy selects how HashBytesWith reads the input buffer. All strategies
// compute the same function; they differ only in how bytes are assembled into
// 32-bit words.
type Strategy uint8

const (
	// StrategyAuto picks a strategy from the alignment of the buffer start.
	StrategyAuto Strategy = iota
	// StrategyWord decodes whole little-endian 32-bit words.
	StrategyWord
	// StrategyHalfWord decodes little-endian 16-bit units and pairs them.
	StrategyHalfWord
	// StrategyByte combines individual bytes with shifts.
	StrategyByte
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("lookup3: unknown strategy")

// Address alignment masks.
const (
	wordAlignMask = 0x3
	halfAlignMask = 0x1
)

var strategyNames = [...]string{
	StrategyAuto:     "auto",
	StrategyWord:     "word",
	StrategyHalfWord: "halfword",
	StrategyByte:     "byte",
}

// String returns the lowercase name of the strategy.
func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}

	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// Strategies returns every concrete strategy, excluding StrategyAuto.
func Strategies() []Strategy {
	return []Strategy{StrategyWord, StrategyHalfWord, StrategyByte}
}

// ParseStrategy maps a name such as "word" or "halfword" to a Strategy.
// Matching is case-insensitive; "half-word" and "half" are accepted aliases.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return StrategyAuto, nil
	case "word":
		return StrategyWord, nil
	case "halfword", "half-word", "half":
		return StrategyHalfWord, nil
	case "byte":
		return StrategyByte, nil
	default:
		return StrategyAuto, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// SelectStrategy reports the strategy StrategyAuto uses for data: word reads
// when the first byte sits on a 4-byte boundary, half-word reads on a 2-byte
// boundary, byte reads otherwise. The address is only inspected, never used
// to reinterpret the buffer.
func SelectStrategy(data []byte) Strategy {
	if len(data) == 0 {
		return StrategyByte
	}

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(data)))

	switch {
	case addr&wordAlignMask == 0:
		return StrategyWord
	case addr&halfAlignMask == 0:
		return StrategyHalfWord
	default:
		return StrategyByte
	}
}
