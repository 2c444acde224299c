package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/lookup3/pkg/units"
)

func TestBinarySizeConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1024, units.KiB)
	assert.Equal(t, 1024*units.KiB, units.MiB)
	assert.Equal(t, 1024*units.MiB, units.GiB)
}

func TestBytesForBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bits uint
		want uint
	}{
		{name: "zero", bits: 0, want: 0},
		{name: "one_bit", bits: 1, want: 1},
		{name: "exact_byte", bits: 8, want: 1},
		{name: "nine_bits", bits: 9, want: 2},
		{name: "one_kib_of_bits", bits: 8 * units.KiB, want: units.KiB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, units.BytesForBits(tt.bits))
		})
	}
}

func TestRoundUpToByte(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint(0), units.RoundUpToByte(0))
	assert.Equal(t, uint(8), units.RoundUpToByte(1))
	assert.Equal(t, uint(256), units.RoundUpToByte(256))
	assert.Equal(t, uint(9592), units.RoundUpToByte(9586))
}

func TestBitsForBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), units.BitsForBytes(0))
	assert.Equal(t, uint64(8*units.MiB), units.BitsForBytes(units.MiB))
}
