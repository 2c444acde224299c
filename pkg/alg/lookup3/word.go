package lookup3

// Word blocks hold three 32-bit words, one per register.
const (
	wordsPerBlock = 3
	bytesPerWord  = 4
)

// HashWord hashes a sequence of 32-bit words with a single seed.
//
// The result equals HashBytes over the little-endian encoding of words for
// any non-empty input.
func HashWord(words []uint32, seed uint32) uint32 {
	c, _ := hashWords(words, seed, 0)

	return c
}

// HashWord2 hashes a sequence of 32-bit words with a primary and a secondary
// seed and returns two values (c, b). c is the better mixed of the two and
// equals HashWord(words, primary) when secondary is zero.
func HashWord2(words []uint32, primary, secondary uint32) (c, b uint32) {
	return hashWords(words, primary, secondary)
}

func hashWords(k []uint32, primary, secondary uint32) (uint32, uint32) {
	a := initValue + uint32(len(k))*bytesPerWord + primary
	b := a
	c := a + secondary

	for len(k) > wordsPerBlock {
		a += k[0]
		b += k[1]
		c += k[2]
		a, b, c = round(a, b, c)
		k = k[wordsPerBlock:]
	}

	switch len(k) {
	case 3:
		c += k[2]

		fallthrough
	case 2:
		b += k[1]

		fallthrough
	case 1:
		a += k[0]
	}

	_, b, c = finalize(a, b, c)

	return c, b
}
