package bitset

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Body encodings.
const (
	encodingRaw byte = 0
	encodingLZ4 byte = 1
)

const (
	// headerSize is the byte size of the serialized header (encoding + bit length).
	headerSize = 1 + 8

	// maxLZ4Ratio bounds how many decoded bytes one LZ4 block byte can yield.
	maxLZ4Ratio = 255
)

// Sentinel errors for binary deserialization.
var (
	errBinaryDataTooShort    = errors.New("bitset: binary data too short")
	errBinaryDataLenMismatch = errors.New("bitset: binary data length mismatch")
	errUnknownEncoding       = errors.New("bitset: unknown body encoding")
)

// MarshalBinary encodes the vector.
// Layout: [encoding byte][bit length uint64][body...]. The body is LZ4 block
// compressed unless compression does not shrink it.
func (s *Bitset) MarshalBinary() ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(s.bits)))

	written, err := lz4.CompressBlock(s.bits, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("bitset: compress: %w", err)
	}

	encoding := encodingLZ4
	body := compressed[:written]

	// Zero means lz4 found the block incompressible.
	if written == 0 || written >= len(s.bits) {
		encoding = encodingRaw
		body = s.bits
	}

	buf := make([]byte, headerSize, headerSize+len(body))
	buf[0] = encoding
	binary.BigEndian.PutUint64(buf[1:headerSize], uint64(s.Len()))

	return append(buf, body...), nil
}

// UnmarshalBinary decodes a vector produced by MarshalBinary, replacing the
// receiver's contents.
func (s *Bitset) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return errBinaryDataTooShort
	}

	numBits := binary.BigEndian.Uint64(data[1:headerSize])
	if numBits%bitsPerByte != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, numBits)
	}

	body := data[headerSize:]
	numBytes := numBits / bitsPerByte

	var decoded []byte

	switch data[0] {
	case encodingRaw:
		if uint64(len(body)) != numBytes {
			return fmt.Errorf("%w: header says %d bytes, body has %d", errBinaryDataLenMismatch, numBytes, len(body))
		}

		decoded = make([]byte, numBytes)
		copy(decoded, body)
	case encodingLZ4:
		if numBytes > uint64(len(body))*maxLZ4Ratio {
			return fmt.Errorf("%w: %d bytes cannot come from a %d byte block",
				errBinaryDataLenMismatch, numBytes, len(body))
		}

		decoded = make([]byte, numBytes)

		n, err := lz4.UncompressBlock(body, decoded)
		if err != nil {
			return fmt.Errorf("bitset: decompress: %w", err)
		}

		if n != len(decoded) {
			return errBinaryDataLenMismatch
		}
	default:
		return fmt.Errorf("%w: %d", errUnknownEncoding, data[0])
	}

	s.bits = decoded

	return nil
}
