package lookup3

import (
	"encoding/binary"
	"unsafe"
)

// blockSize is the number of bytes folded into (a, b, c) per mixing round.
const blockSize = 12

// HashBytes hashes data with a single seed. It is lookup3's hashlittle.
func HashBytes(data []byte, seed uint32) uint32 {
	c, _ := hashBytes(SelectStrategy(data), data, seed, 0)

	return c
}

// HashBytes2 hashes data with a primary and a secondary seed and returns two
// values (c, b). It is lookup3's hashlittle2: c equals HashBytes(data, primary)
// when secondary is zero, and b is a second, less thoroughly mixed value.
func HashBytes2(data []byte, primary, secondary uint32) (c, b uint32) {
	return hashBytes(SelectStrategy(data), data, primary, secondary)
}

// HashString hashes the bytes of s without copying them.
func HashString(s string, seed uint32) uint32 {
	return HashBytes(unsafe.Slice(unsafe.StringData(s), len(s)), seed)
}

// HashBytesWith is HashBytes with an explicit read strategy. StrategyAuto
// behaves exactly like HashBytes.
func HashBytesWith(strategy Strategy, data []byte, seed uint32) uint32 {
	c, _ := HashBytes2With(strategy, data, seed, 0)

	return c
}

// HashBytes2With is HashBytes2 with an explicit read strategy.
func HashBytes2With(strategy Strategy, data []byte, primary, secondary uint32) (c, b uint32) {
	if strategy == StrategyAuto {
		strategy = SelectStrategy(data)
	}

	return hashBytes(strategy, data, primary, secondary)
}

func hashBytes(strategy Strategy, k []byte, primary, secondary uint32) (uint32, uint32) {
	a := initValue + uint32(len(k)) + primary
	b := a
	c := a + secondary

	// Nothing to fold; lookup3 skips the finalizer for empty keys.
	if len(k) == 0 {
		return c, b
	}

	switch strategy {
	case StrategyWord:
		a, b, c = foldWords(k, a, b, c)
	case StrategyHalfWord:
		a, b, c = foldHalfWords(k, a, b, c)
	default:
		a, b, c = foldBytes(k, a, b, c)
	}

	_, b, c = finalize(a, b, c)

	return c, b
}

// foldWords consumes k as little-endian 32-bit words. The last, partial word
// of the tail is zero-padded.
func foldWords(k []byte, a, b, c uint32) (uint32, uint32, uint32) {
	for len(k) > blockSize {
		a += binary.LittleEndian.Uint32(k[0:])
		b += binary.LittleEndian.Uint32(k[4:])
		c += binary.LittleEndian.Uint32(k[8:])
		a, b, c = round(a, b, c)
		k = k[blockSize:]
	}

	switch len(k) {
	case 12:
		c += binary.LittleEndian.Uint32(k[8:])
		b += binary.LittleEndian.Uint32(k[4:])
		a += binary.LittleEndian.Uint32(k[0:])
	case 9, 10, 11:
		c += partialWord(k[8:])
		b += binary.LittleEndian.Uint32(k[4:])
		a += binary.LittleEndian.Uint32(k[0:])
	case 8:
		b += binary.LittleEndian.Uint32(k[4:])
		a += binary.LittleEndian.Uint32(k[0:])
	case 5, 6, 7:
		b += partialWord(k[4:])
		a += binary.LittleEndian.Uint32(k[0:])
	case 4:
		a += binary.LittleEndian.Uint32(k[0:])
	case 1, 2, 3:
		a += partialWord(k)
	}

	return a, b, c
}

// partialWord decodes the 1 to 3 bytes of p as the low bytes of a
// little-endian word.
func partialWord(p []byte) uint32 {
	var w [bytesPerWord]byte

	copy(w[:], p)

	return binary.LittleEndian.Uint32(w[:])
}

// foldHalfWords consumes k as little-endian 16-bit units, two per register.
func foldHalfWords(k []byte, a, b, c uint32) (uint32, uint32, uint32) {
	for len(k) > blockSize {
		a += halfPair(k[0:])
		b += halfPair(k[4:])
		c += halfPair(k[8:])
		a, b, c = round(a, b, c)
		k = k[blockSize:]
	}

	switch len(k) {
	case 12:
		c += halfPair(k[8:])
		b += halfPair(k[4:])
		a += halfPair(k[0:])
	case 11:
		c += uint32(k[10]) << 16

		fallthrough
	case 10:
		c += half(k[8:])
		b += halfPair(k[4:])
		a += halfPair(k[0:])
	case 9:
		c += uint32(k[8])
		b += halfPair(k[4:])
		a += halfPair(k[0:])
	case 8:
		b += halfPair(k[4:])
		a += halfPair(k[0:])
	case 7:
		b += uint32(k[6]) << 16

		fallthrough
	case 6:
		b += half(k[4:])
		a += halfPair(k[0:])
	case 5:
		b += uint32(k[4])
		a += halfPair(k[0:])
	case 4:
		a += halfPair(k[0:])
	case 3:
		a += uint32(k[2]) << 16

		fallthrough
	case 2:
		a += half(k[0:])
	case 1:
		a += uint32(k[0])
	}

	return a, b, c
}

func half(p []byte) uint32 {
	return uint32(binary.LittleEndian.Uint16(p))
}

// halfPair joins the two 16-bit units at the start of p as lo | hi<<16.
func halfPair(p []byte) uint32 {
	return half(p[0:]) | half(p[2:])<<16
}

// foldBytes assembles each register from four bytes with explicit shifts.
// It makes no assumption about alignment or byte order.
func foldBytes(k []byte, a, b, c uint32) (uint32, uint32, uint32) {
	for len(k) > blockSize {
		a += uint32(k[0]) | uint32(k[1])<<8 | uint32(k[2])<<16 | uint32(k[3])<<24
		b += uint32(k[4]) | uint32(k[5])<<8 | uint32(k[6])<<16 | uint32(k[7])<<24
		c += uint32(k[8]) | uint32(k[9])<<8 | uint32(k[10])<<16 | uint32(k[11])<<24
		a, b, c = round(a, b, c)
		k = k[blockSize:]
	}

	switch len(k) {
	case 12:
		c += uint32(k[11]) << 24

		fallthrough
	case 11:
		c += uint32(k[10]) << 16

		fallthrough
	case 10:
		c += uint32(k[9]) << 8

		fallthrough
	case 9:
		c += uint32(k[8])

		fallthrough
	case 8:
		b += uint32(k[7]) << 24

		fallthrough
	case 7:
		b += uint32(k[6]) << 16

		fallthrough
	case 6:
		b += uint32(k[5]) << 8

		fallthrough
	case 5:
		b += uint32(k[4])

		fallthrough
	case 4:
		a += uint32(k[3]) << 24

		fallthrough
	case 3:
		a += uint32(k[2]) << 16

		fallthrough
	case 2:
		a += uint32(k[1]) << 8

		fallthrough
	case 1:
		a += uint32(k[0])
	}

	return a, b, c
}
