// Package bcs implements the subset of Binary Canonical Serialization needed
// to encode Sui transaction data.
package bcs

import (
	"encoding/binary"
)

// Encoder appends BCS-encoded values to an internal buffer.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Bool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
		return
	}
	e.buf = append(e.buf, 0)
}

func (e *Encoder) U8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *Encoder) U16(v uint16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
}

func (e *Encoder) U32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

func (e *Encoder) U64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

// ULEB128 writes v as an unsigned LEB128 varint. Used for sequence lengths
// and enum variant indices.
func (e *Encoder) ULEB128(v uint64) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

// Variant writes an enum variant index.
func (e *Encoder) Variant(idx uint32) {
	e.ULEB128(uint64(idx))
}

// Length writes a sequence length prefix.
func (e *Encoder) Length(n int) {
	e.ULEB128(uint64(n))
}

// Fixed writes b without a length prefix (fixed-size arrays).
func (e *Encoder) Fixed(b []byte) {
	e.buf = append(e.buf, b...)
}

// ByteVector writes a length-prefixed byte vector.
func (e *Encoder) ByteVector(b []byte) {
	e.Length(len(b))
	e.buf = append(e.buf, b...)
}

// String writes a UTF-8 string as a byte vector.
func (e *Encoder) String(s string) {
	e.ByteVector([]byte(s))
}

// Option writes the None/Some tag; the caller encodes the value when present.
func (e *Encoder) Option(present bool) {
	e.Bool(present)
}

// Marshaler is implemented by types that know their BCS layout.
type Marshaler interface {
	MarshalBCS(e *Encoder)
}

// Marshal encodes v into a fresh buffer.
func Marshal(v Marshaler) []byte {
	e := NewEncoder()
	v.MarshalBCS(e)
	return e.Bytes()
}

// U64Bytes encodes a single u64, the layout of a pure u64 argument.
func U64Bytes(v uint64) []byte {
	e := NewEncoder()
	e.U64(v)
	return e.Bytes()
}
