// Package units provides binary size multipliers and bit/byte conversions
// for sizing bit vectors.
package units

// Binary size multipliers.
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
)

// BitsPerByte is the number of bits packed into one byte of a bit vector.
const BitsPerByte = 8

// BytesForBits returns the number of whole bytes needed to hold numBits bits.
func BytesForBits(numBits uint) uint {
	return (numBits + BitsPerByte - 1) / BitsPerByte
}

// BitsForBytes returns the number of bits held by numBytes bytes.
func BitsForBytes(numBytes uint64) uint64 {
	return numBytes * BitsPerByte
}

// RoundUpToByte rounds numBits up to the next multiple of BitsPerByte.
func RoundUpToByte(numBits uint) uint {
	return BytesForBits(numBits) * BitsPerByte
}
