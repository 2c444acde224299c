// Package bitset provides a fixed-size bit vector backed by a byte slice.
//
// The length is fixed at construction and must be a multiple of 8. Every
// accessor validates its index and reports ErrIndexOutOfRange instead of
// silently ignoring bad input. A Bitset is not safe for concurrent mutation;
// callers that share one must synchronize.
package bitset

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	// bitsPerByte is the number of bits stored in each backing byte.
	bitsPerByte = 8

	// byteShift converts a bit index to its byte index.
	byteShift = 3

	// bitMask extracts the bit offset within a byte.
	bitMask = bitsPerByte - 1
)

var (
	// ErrInvalidLength is returned when the requested bit length is not a
	// multiple of 8.
	ErrInvalidLength = errors.New("bitset: length must be a multiple of 8")

	// ErrIndexOutOfRange is returned when an index is not below Len.
	ErrIndexOutOfRange = errors.New("bitset: index out of range")
)

// Bitset is a fixed-length sequence of bits, all initially clear.
type Bitset struct {
	bits []byte
}

// New returns a Bitset of numBits bits. numBits must be a multiple of 8;
// zero yields an empty vector on which every index is out of range.
func New(numBits uint) (*Bitset, error) {
	if numBits%bitsPerByte != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, numBits)
	}

	return &Bitset{bits: make([]byte, numBits/bitsPerByte)}, nil
}

// Len returns the number of bits in the vector.
func (s *Bitset) Len() uint {
	return uint(len(s.bits)) * bitsPerByte
}

// Set sets the bit at idx.
func (s *Bitset) Set(idx uint) error {
	err := s.check(idx)
	if err != nil {
		return err
	}

	s.bits[idx>>byteShift] |= 1 << (idx & bitMask)

	return nil
}

// Clear clears the bit at idx.
func (s *Bitset) Clear(idx uint) error {
	err := s.check(idx)
	if err != nil {
		return err
	}

	s.bits[idx>>byteShift] &^= 1 << (idx & bitMask)

	return nil
}

// Get reports whether the bit at idx is set.
func (s *Bitset) Get(idx uint) (bool, error) {
	err := s.check(idx)
	if err != nil {
		return false, err
	}

	return s.bits[idx>>byteShift]&(1<<(idx&bitMask)) != 0, nil
}

// Count returns the number of set bits.
func (s *Bitset) Count() uint {
	total := 0
	for _, b := range s.bits {
		total += bits.OnesCount8(b)
	}

	return uint(total)
}

// Reset clears every bit without reallocating.
func (s *Bitset) Reset() {
	clear(s.bits)
}

// Bytes returns a copy of the backing bytes. Bit i lives in byte i/8 at
// position i%8, least significant bit first.
func (s *Bitset) Bytes() []byte {
	return append([]byte(nil), s.bits...)
}

func (s *Bitset) check(idx uint) error {
	if idx >= s.Len() {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, idx, s.Len())
	}

	return nil
}
