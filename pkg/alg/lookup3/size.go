package lookup3

// HashSize returns the number of buckets addressable with n bits of hash.
func HashSize(n uint8) uint32 {
	return 1 << n
}

// HashMask returns a mask that keeps the low n bits of a hash, for indexing a
// table of HashSize(n) buckets.
func HashMask(n uint8) uint32 {
	return HashSize(n) - 1
}
