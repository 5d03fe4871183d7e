package embedding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidVectorBlob is returned when a stored blob is not a whole number of float32 values.
var ErrInvalidVectorBlob = errors.New("embedding: blob length is not a multiple of 4")

// EncodeVector packs values as consecutive 4-byte little-endian IEEE-754 floats, no header.
func EncodeVector(values []float32) []byte {
	buf := make([]byte, len(values)*4)
	for i, f := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// DecodeVector is the exact inverse of EncodeVector; dimension is len(blob)/4.
func DecodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidVectorBlob, len(blob))
	}
	values := make([]float32, len(blob)/4)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return values, nil
}
