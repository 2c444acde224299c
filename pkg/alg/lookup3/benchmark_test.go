package lookup3_test

import (
	"fmt"
	"testing"

	"github.com/Sumatoshi-tech/lookup3/pkg/alg/lookup3"
)

var benchSizes = []int{4, 12, 30, 64, 1024, 64 * 1024}

var sink uint32

// BenchmarkHashBytes measures HashBytes throughput per strategy and size.
func BenchmarkHashBytes(b *testing.B) {
	for _, size := range benchSizes {
		for _, s := range lookup3.Strategies() {
			b.Run(fmt.Sprintf("%s/%d", s, size), func(b *testing.B) {
				data := patternBytes(size)

				b.SetBytes(int64(size))
				b.ResetTimer()

				for range b.N {
					sink = lookup3.HashBytesWith(s, data, 0)
				}
			})
		}
	}
}

// BenchmarkHashBytes2 measures the dual-output variant on short keys.
func BenchmarkHashBytes2(b *testing.B) {
	data := []byte(fourScore)

	b.SetBytes(int64(len(data)))

	for range b.N {
		c, bb := lookup3.HashBytes2(data, 1, 2)
		sink = c ^ bb
	}
}

// BenchmarkHashWord measures word hashing over 256 words.
func BenchmarkHashWord(b *testing.B) {
	const wordCount = 256

	words := make([]uint32, wordCount)
	for i := range words {
		words[i] = uint32(i)
	}

	b.SetBytes(wordCount * 4)

	for range b.N {
		sink = lookup3.HashWord(words, 0)
	}
}
