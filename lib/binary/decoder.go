package binary

import (
	"encoding/binary"
	"io"
	"math"
)

func NewDecoder(input io.Reader) *Decoder {
	return &Decoder{
		input: input,
	}
}

type Decoder struct {
	input   io.Reader
	scratch [binary.MaxVarintLen64]byte
}

func (dec *Decoder) Nullable() (bool, error) {
	v, err := dec.UInt8()
	return v != 0, err
}

func (dec *Decoder) Uvarint() (uint64, error) {
	var (
		v     uint64
		shift uint
	)
	for i := 0; i < binary.MaxVarintLen64; i++ {
		b, err := dec.readByte()
		if err != nil {
			return 0, err
		}
		if b < 0x80 {
			v |= uint64(b) << shift
			return v, nil
		}
		v |= uint64(b&0x7f) << shift
		shift += 7
	}
	return 0, errOverflow
}

func (dec *Decoder) readByte() (byte, error) {
	if _, err := io.ReadFull(dec.input, dec.scratch[:1]); err != nil {
		return 0, err
	}
	return dec.scratch[0], nil
}

func (dec *Decoder) Bool() (bool, error) {
	v, err := dec.UInt8()
	return v != 0, err
}

func (dec *Decoder) Int8() (int8, error) {
	v, err := dec.UInt8()
	return int8(v), err
}

func (dec *Decoder) Int16() (int16, error) {
	v, err := dec.UInt16()
	return int16(v), err
}

func (dec *Decoder) Int32() (int32, error) {
	v, err := dec.UInt32()
	return int32(v), err
}

func (dec *Decoder) Int64() (int64, error) {
	v, err := dec.UInt64()
	return int64(v), err
}

func (dec *Decoder) UInt8() (uint8, error) {
	if _, err := io.ReadFull(dec.input, dec.scratch[:1]); err != nil {
		return 0, err
	}
	return dec.scratch[0], nil
}

func (dec *Decoder) UInt16() (uint16, error) {
	if _, err := io.ReadFull(dec.input, dec.scratch[:2]); err != nil {
		return 0, err
	}
	return uint16(dec.scratch[0]) | uint16(dec.scratch[1])<<8, nil
}

func (dec *Decoder) UInt32() (uint32, error) {
	if _, err := io.ReadFull(dec.input, dec.scratch[:4]); err != nil {
		return 0, err
	}
	return uint32(dec.scratch[0]) | uint32(dec.scratch[1])<<8 |
		uint32(dec.scratch[2])<<16 | uint32(dec.scratch[3])<<24, nil
}

func (dec *Decoder) UInt64() (uint64, error) {
	if _, err := io.ReadFull(dec.input, dec.scratch[:8]); err != nil {
		return 0, err
	}
	return uint64(dec.scratch[0]) | uint64(dec.scratch[1])<<8 |
		uint64(dec.scratch[2])<<16 | uint64(dec.scratch[3])<<24 |
		uint64(dec.scratch[4])<<32 | uint64(dec.scratch[5])<<40 |
		uint64(dec.scratch[6])<<48 | uint64(dec.scratch[7])<<56, nil
}

func (dec *Decoder) Float32() (float32, error) {
	v, err := dec.UInt32()
	return math.Float32frombits(v), err
}

func (dec *Decoder) Float64() (float64, error) {
	v, err := dec.UInt64()
	return math.Float64frombits(v), err
}

// String reads a varint-length-prefixed UTF-8 string.
func (dec *Decoder) String() (string, error) {
	b, err := dec.readLengthPrefixed()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (dec *Decoder) readLengthPrefixed() ([]byte, error) {
	length, err := dec.Uvarint()
	if err != nil {
		return nil, err
	}
	return dec.Fixed(int(length))
}

// Fixed reads exactly n raw bytes with no length prefix, the symmetric
// counterpart to Encoder.Raw. Column codecs use it for fixed-width payloads
// whose length is implied by the column type (UUIDs, IPv6 addresses, big
// integers).
func (dec *Decoder) Fixed(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(dec.input, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Raw is an alias for Fixed kept for symmetry with Encoder.Raw.
func (dec *Decoder) Raw(n int) ([]byte, error) {
	return dec.Fixed(n)
}

// Skip discards n raw bytes without allocating a buffer to hold them,
// the primitive behind every column codec's skipping-mode reader.
func (dec *Decoder) Skip(n int) error {
	if n == 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, dec.input, int64(n))
	return err
}

var errOverflow = overflowError{}

type overflowError struct{}

func (overflowError) Error() string { return "binary: varint overflows 64 bits" }
