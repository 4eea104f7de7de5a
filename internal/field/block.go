package field

import (
	"encoding/binary"
	"math"
)

// BlockSize is the alignment unit of the flash-file container.
const BlockSize = 512

// PadTo512 zero-fills data up to the next multiple of BlockSize.
// Data that is already aligned (including empty data) is returned unchanged.
func PadTo512(data []byte) []byte {
	n := PaddedLen(len(data))
	if n == len(data) {
		return data
	}

	out := make([]byte, n)
	copy(out, data)
	return out
}

// PaddedLen rounds n up to a multiple of BlockSize.
func PaddedLen(n int) int {
	if rem := n % BlockSize; rem != 0 {
		return n + BlockSize - rem
	}
	return n
}

// Block accumulates little-endian fields for one container object.
//
// The zero value is ready to use. With Strict set, Text rejects runes that have
// no single-byte form instead of writing Placeholder; the first such failure is
// kept and reported by Err.
type Block struct {
	Strict bool

	buf []byte
	err error
}

// Float64 appends an IEEE-754 double, little-endian.
func (b *Block) Float64(v float64) {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, math.Float64bits(v))
}

// Uint16 appends a 16-bit unsigned integer, little-endian.
func (b *Block) Uint16(v uint16) {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
}

// Uint32 appends a 32-bit unsigned integer, little-endian.
func (b *Block) Uint32(v uint32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
}

// Byte appends a single byte flag.
func (b *Block) Byte(v byte) {
	b.buf = append(b.buf, v)
}

// Text appends text as a fixed-width, zero-filled field.
func (b *Block) Text(s string, length int) {
	if !b.Strict {
		b.buf = append(b.buf, FixedWidth(s, length)...)
		return
	}

	f, err := FixedWidthStrict(s, length)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		f = make([]byte, length)
	}
	b.buf = append(b.buf, f...)
}

// Err returns the first encoding failure seen by Text.
func (b *Block) Err() error {
	return b.err
}

// Len returns the unpadded content length.
func (b *Block) Len() int {
	return len(b.buf)
}

// Bytes returns the unpadded content.
func (b *Block) Bytes() []byte {
	return b.buf
}

// PaddedLen returns the content length rounded up to BlockSize.
func (b *Block) PaddedLen() int {
	return PaddedLen(len(b.buf))
}

// Padded returns the content padded to BlockSize.
func (b *Block) Padded() []byte {
	return PadTo512(b.buf)
}

// Float64At reads a little-endian double at offset.
func Float64At(data []byte, offset int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(data[offset : offset+8]))
}
