package lookup3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound_KnownValues(t *testing.T) {
	t.Parallel()

	a, b, c := round(1, 2, 3)
	assert.Equal(t, uint32(0x877d02a0), a)
	assert.Equal(t, uint32(0xcd175a8d), b)
	assert.Equal(t, uint32(0xe3fc5c22), c)
}

func TestRound_ZeroIsFixedPoint(t *testing.T) {
	t.Parallel()

	// Every step is a subtract, add or XOR of zeros.
	a, b, c := round(0, 0, 0)
	assert.Zero(t, a)
	assert.Zero(t, b)
	assert.Zero(t, c)
}

func TestFinalize_KnownValues(t *testing.T) {
	t.Parallel()

	a, b, c := finalize(1, 2, 3)
	assert.Equal(t, uint32(0xc0bbac72), a)
	assert.Equal(t, uint32(0xd6302d23), b)
	assert.Equal(t, uint32(0x36ff91db), c)
}

func TestFinalize_EmptyWordState(t *testing.T) {
	t.Parallel()

	// Registers of an empty word key with seed 0.
	_, b, c := finalize(initValue, initValue, initValue)
	assert.Equal(t, uint32(0x31b8a510), c)
	assert.Equal(t, uint32(0x6d004bb2), b)
}

func TestRound_Avalanche(t *testing.T) {
	t.Parallel()

	_, _, c1 := finalize(round(0x12345678, 0x9abcdef0, 0x0fedcba9))
	_, _, c2 := finalize(round(0x12345679, 0x9abcdef0, 0x0fedcba9))

	diff := c1 ^ c2
	flipped := 0

	for diff != 0 {
		flipped += int(diff & 1)
		diff >>= 1
	}

	// A one-bit input change should flip a substantial share of output bits.
	assert.Greater(t, flipped, 4)
}

func TestFoldPaths_AgreeOnRegisters(t *testing.T) {
	t.Parallel()

	data := make([]byte, 3*blockSize+11)
	for i := range data {
		data[i] = byte(i*131 + 7)
	}

	for n := range len(data) + 1 {
		k := data[:n]

		wa, wb, wc := foldWords(k, 1, 2, 3)
		ha, hb, hc := foldHalfWords(k, 1, 2, 3)
		ba, bb, bc := foldBytes(k, 1, 2, 3)

		assert.Equal(t, [3]uint32{ba, bb, bc}, [3]uint32{wa, wb, wc}, "word path, length %d", n)
		assert.Equal(t, [3]uint32{ba, bb, bc}, [3]uint32{ha, hb, hc}, "half-word path, length %d", n)
	}
}

func TestPartialWord(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(0x01), partialWord([]byte{0x01}))
	assert.Equal(t, uint32(0x0201), partialWord([]byte{0x01, 0x02}))
	assert.Equal(t, uint32(0x030201), partialWord([]byte{0x01, 0x02, 0x03}))
}

func TestHalfPair(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(0x04030201), halfPair([]byte{0x01, 0x02, 0x03, 0x04}))
	assert.Equal(t, uint32(0x0201), half([]byte{0x01, 0x02}))
}
