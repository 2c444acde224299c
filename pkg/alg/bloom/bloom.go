// Package bloom provides a space-efficient probabilistic set membership filter.
//
// A Bloom filter answers "definitely not in set" or "possibly in set" with a
// tunable false-positive rate. Membership is recorded in a bitset.Bitset.
//
// This implementation uses the double-hashing technique from Kirsch and
// Mitzenmacher (2006): the two outputs of one lookup3.HashBytes2 pass derive
// k bit positions via h(i) = h1 + i*h2 mod m, avoiding k independent hashes.
package bloom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Sumatoshi-tech/lookup3/pkg/alg/bitset"
	"github.com/Sumatoshi-tech/lookup3/pkg/alg/lookup3"
	"github.com/Sumatoshi-tech/lookup3/pkg/units"
)

// Sentinel errors for binary deserialization.
var (
	errBinaryDataTooShort = errors.New("bloom: binary data too short")
	errBinaryDataZeroBits = errors.New("bloom: binary data describes an empty filter")
)

const (
	// ln2Squared is ln(2) squared, used in the optimal bit-array size formula.
	ln2Squared = math.Ln2 * math.Ln2

	// bloomHeaderSize is the byte size of the serialized header (k + count + seed).
	bloomHeaderSize = 8 + 8 + 4

	// uint64Size is the byte size of a single uint64 field.
	uint64Size = 8

	// MaxHashes bounds the positions set or checked per value.
	MaxHashes = 64
)

var (
	// ErrZeroN is returned when n (expected element count) is zero.
	ErrZeroN = errors.New("bloom: n must be positive")

	// ErrInvalidFP is returned when fp is not in the open interval (0, 1).
	ErrInvalidFP = errors.New("bloom: fp must be in the open interval (0, 1)")

	// ErrZeroBits is returned when the filter would have no bits.
	ErrZeroBits = errors.New("bloom: bit count must be positive")

	// ErrZeroHashes is returned when the hash count is zero.
	ErrZeroHashes = errors.New("bloom: hash count must be positive")

	// ErrTooManyHashes is returned when the hash count exceeds MaxHashes.
	ErrTooManyHashes = errors.New("bloom: hash count exceeds maximum")
)

// Membership is the outcome of a filter query.
type Membership uint8

const (
	// DefinitelyAbsent means the value was never added.
	DefinitelyAbsent Membership = iota
	// MaybePresent means the value was possibly added, subject to the
	// false-positive rate.
	MaybePresent
)

// String returns a human-readable name for the outcome.
func (m Membership) String() string {
	if m == MaybePresent {
		return "maybe present"
	}

	return "definitely absent"
}

// Filter is a thread-safe Bloom filter.
type Filter struct {
	mu    sync.RWMutex
	bits  *bitset.Bitset
	m     uint   // Total bits.
	k     uint   // Number of hash functions.
	count uint   // Approximate number of added elements.
	seed  uint32 // Seed for both lookup3 seeds.
}

// Option configures a Filter at construction.
type Option func(*Filter)

// WithSeed sets the lookup3 seed used to derive bit positions. Filters only
// agree on membership when they share a seed.
func WithSeed(seed uint32) Option {
	return func(f *Filter) {
		f.seed = seed
	}
}

// New creates a filter of numBits bits with numHashes positions per value.
// numBits must be a positive multiple of 8 and numHashes at most MaxHashes.
func New(numBits, numHashes uint, opts ...Option) (*Filter, error) {
	if numBits == 0 {
		return nil, ErrZeroBits
	}

	err := checkHashes(uint64(numHashes))
	if err != nil {
		return nil, err
	}

	bs, err := bitset.New(numBits)
	if err != nil {
		return nil, fmt.Errorf("bloom: %w", err)
	}

	f := &Filter{
		bits: bs,
		m:    numBits,
		k:    numHashes,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// NewWithEstimates creates a Bloom filter sized for n expected elements at a
// false-positive rate of fp. Returns an error if n is zero or fp is not in the
// open interval (0, 1).
func NewWithEstimates(n uint, fp float64, opts ...Option) (*Filter, error) {
	if n == 0 {
		return nil, ErrZeroN
	}

	if fp <= 0 || fp >= 1 {
		return nil, ErrInvalidFP
	}

	m := optimalM(n, fp)

	return New(m, optimalK(m, n), opts...)
}

// BitCount returns the size of the bit array in bits.
func (f *Filter) BitCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.m
}

// HashCount returns the number of hash functions used by the filter.
func (f *Filter) HashCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.k
}

// Seed returns the lookup3 seed used to derive bit positions.
func (f *Filter) Seed() uint32 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.seed
}

// Add inserts value into the filter.
func (f *Filter) Add(value []byte) {
	f.mu.Lock()
	f.setBits(f.hashKernel(value))

	f.count++
	f.mu.Unlock()
}

// MightContain reports whether value is possibly in the filter.
func (f *Filter) MightContain(value []byte) Membership {
	if f.Test(value) {
		return MaybePresent
	}

	return DefinitelyAbsent
}

// Test reports whether value is possibly in the filter. A return value of
// false guarantees the element was never added. A return value of true means
// the element might have been added (subject to the false-positive rate).
func (f *Filter) Test(value []byte) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.testBits(f.hashKernel(value))
}

// TestAndAdd tests for membership and then adds the element. It returns true if
// the element was possibly already present before this call.
func (f *Filter) TestAndAdd(value []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	h1, h2 := f.hashKernel(value)

	present := f.testBits(h1, h2)
	if !present {
		f.setBits(h1, h2)
	}

	f.count++

	return present
}

// AddBulk inserts multiple elements into the filter.
func (f *Filter) AddBulk(items [][]byte) {
	if len(items) == 0 {
		return
	}

	f.mu.Lock()
	for _, item := range items {
		h1, h2 := f.hashKernel(item)
		f.setBits(h1, h2)

		f.count++
	}
	f.mu.Unlock()
}

// TestBulk tests multiple elements for membership. Returns a bool slice of the
// same length as items, where each entry indicates possible presence.
func (f *Filter) TestBulk(items [][]byte) []bool {
	if len(items) == 0 {
		return nil
	}

	results := make([]bool, len(items))

	f.mu.RLock()

	for idx, item := range items {
		h1, h2 := f.hashKernel(item)
		results[idx] = f.testBits(h1, h2)
	}

	f.mu.RUnlock()

	return results
}

// EstimatedCount returns an approximation of the number of elements that have
// been added to the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.count
}

// FillRatio returns the fraction of bits that are set, in the range [0, 1].
func (f *Filter) FillRatio() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return float64(f.bits.Count()) / float64(f.m)
}

// MarshalBinary encodes the filter into a binary format.
// Layout: [k uint64][count uint64][seed uint32][bitset...].
func (f *Filter) MarshalBinary() ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	body, err := f.bits.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("bloom: %w", err)
	}

	buf := make([]byte, bloomHeaderSize, bloomHeaderSize+len(body))
	binary.BigEndian.PutUint64(buf[0:uint64Size], uint64(f.k))
	binary.BigEndian.PutUint64(buf[uint64Size:2*uint64Size], uint64(f.count))
	binary.BigEndian.PutUint32(buf[2*uint64Size:bloomHeaderSize], f.seed)

	return append(buf, body...), nil
}

// UnmarshalBinary decodes the filter from a binary format produced by MarshalBinary.
func (f *Filter) UnmarshalBinary(data []byte) error {
	if len(data) < bloomHeaderSize {
		return errBinaryDataTooShort
	}

	k := binary.BigEndian.Uint64(data[0:uint64Size])
	count := binary.BigEndian.Uint64(data[uint64Size : 2*uint64Size])
	seed := binary.BigEndian.Uint32(data[2*uint64Size : bloomHeaderSize])

	err := checkHashes(k)
	if err != nil {
		return err
	}

	bs := new(bitset.Bitset)

	err = bs.UnmarshalBinary(data[bloomHeaderSize:])
	if err != nil {
		return fmt.Errorf("bloom: %w", err)
	}

	if bs.Len() == 0 {
		return errBinaryDataZeroBits
	}

	f.mu.Lock()
	f.bits = bs
	f.m = bs.Len()
	f.k = uint(k)
	f.count = uint(count)
	f.seed = seed
	f.mu.Unlock()

	return nil
}

// Reset clears the filter without reallocating the bit array.
func (f *Filter) Reset() {
	f.mu.Lock()
	f.bits.Reset()

	f.count = 0
	f.mu.Unlock()
}

// setBits sets the k bit positions derived from h1 and h2. Callers hold mu.
func (f *Filter) setBits(h1, h2 uint64) {
	for i := range f.k {
		err := f.bits.Set(f.position(h1, h2, i))
		if err != nil {
			// position reduces modulo m, so this is unreachable.
			panic(err)
		}
	}
}

// testBits returns true if all k bit positions derived from h1 and h2 are set.
// Callers hold mu.
func (f *Filter) testBits(h1, h2 uint64) bool {
	for i := range f.k {
		set, err := f.bits.Get(f.position(h1, h2, i))
		if err != nil || !set {
			return false
		}
	}

	return true
}

func (f *Filter) position(h1, h2 uint64, i uint) uint {
	return uint((h1 + uint64(i)*h2) % uint64(f.m))
}

// hashKernel derives two base hashes from one lookup3.HashBytes2 pass. The
// second is forced odd so the step through the bit array is coprime with any
// power-of-two m. Callers hold mu.
func (f *Filter) hashKernel(value []byte) (h1, h2 uint64) {
	c, b := lookup3.HashBytes2(value, f.seed, f.seed)

	return uint64(c), uint64(b) | 1
}

func checkHashes(k uint64) error {
	switch {
	case k == 0:
		return ErrZeroHashes
	case k > MaxHashes:
		return fmt.Errorf("%w: %d > %d", ErrTooManyHashes, k, MaxHashes)
	default:
		return nil
	}
}

// optimalM computes the optimal bit-array size for n elements at false-positive
// rate fp using the formula m = ceil(-n * ln(fp) / ln(2)^2), rounded up to a
// whole number of bytes.
func optimalM(n uint, fp float64) uint {
	m := uint(math.Ceil(-float64(n) * math.Log(fp) / ln2Squared))

	return units.RoundUpToByte(m)
}

// optimalK computes the optimal number of hash functions using the formula
// k = round(m/n * ln(2)), clamped to [1, MaxHashes].
func optimalK(m, n uint) uint {
	k := uint(math.Round(float64(m) / float64(n) * math.Ln2))

	return max(1, min(k, MaxHashes))
}
