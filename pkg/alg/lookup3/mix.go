// Package lookup3 implements Bob Jenkins' lookup3 family of non-cryptographic
// hash functions.
//
// Every entry point is a one-shot function over an already-materialized
// buffer: HashWord and HashWord2 hash sequences of 32-bit words, HashBytes and
// HashBytes2 hash arbitrary byte slices. The dual variants return two 32-bit
// values from a single pass, which is enough to derive any number of bit
// positions via double hashing.
//
// All register arithmetic is unsigned 32-bit and wraps modulo 2^32. Results are
// independent of platform byte order and of the memory alignment of the input.
package lookup3

import "math/bits"

// initValue is the starting value of all three registers before the length
// and seeds are added.
const initValue = 0xdeadbeef

// Rotate amounts for the six steps of the mixing round.
const (
	roundRot1 = 4
	roundRot2 = 6
	roundRot3 = 8
	roundRot4 = 16
	roundRot5 = 19
	roundRot6 = 4
)

// Rotate amounts for the seven steps of the finalizer.
const (
	finalRot1 = 14
	finalRot2 = 11
	finalRot3 = 25
	finalRot4 = 16
	finalRot5 = 4
	finalRot6 = 14
	finalRot7 = 24
)

// round mixes one full block into the three registers. It is reversible, so
// no entropy is lost between blocks.
func round(a, b, c uint32) (uint32, uint32, uint32) {
	a -= c
	a ^= bits.RotateLeft32(c, roundRot1)
	c += b

	b -= a
	b ^= bits.RotateLeft32(a, roundRot2)
	a += c

	c -= b
	c ^= bits.RotateLeft32(b, roundRot3)
	b += a

	a -= c
	a ^= bits.RotateLeft32(c, roundRot4)
	c += b

	b -= a
	b ^= bits.RotateLeft32(a, roundRot5)
	a += c

	c -= b
	c ^= bits.RotateLeft32(b, roundRot6)
	b += a

	return a, b, c
}

// finalize is the closing avalanche applied once per hash, after the tail has
// been folded in.
func finalize(a, b, c uint32) (uint32, uint32, uint32) {
	c ^= b
	c -= bits.RotateLeft32(b, finalRot1)

	a ^= c
	a -= bits.RotateLeft32(c, finalRot2)

	b ^= a
	b -= bits.RotateLeft32(a, finalRot3)

	c ^= b
	c -= bits.RotateLeft32(b, finalRot4)

	a ^= c
	a -= bits.RotateLeft32(c, finalRot5)

	b ^= a
	b -= bits.RotateLeft32(a, finalRot6)

	c ^= b
	c -= bits.RotateLeft32(b, finalRot7)

	return a, b, c
}
