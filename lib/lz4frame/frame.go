// Package lz4frame implements the compression block envelope that wraps
// byte ranges crossing the wire when compression is enabled: a 16-byte
// CityHash-128 checksum, a 1-byte algorithm tag, a 4-byte compressed size
// (including the 9-byte header) and a 4-byte uncompressed size, followed by
// the payload. The checksum covers the header and the compressed payload,
// never the uncompressed bytes.
//
// The block algorithm itself is delegated to pierrec/lz4; only the framing,
// checksum and size bookkeeping are hand-rolled here.
package lz4frame

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/clickhouse-native/chwire/lib/cityhash"
)

// Method is the one-byte compression algorithm tag.
type Method byte

const (
	MethodNone Method = 0x02
	MethodLZ4  Method = 0x82
	MethodZSTD Method = 0x90
)

const (
	checksumSize       = 16
	compressHeaderSize = 1 + 4 + 4
	HeaderSize         = checksumSize + compressHeaderSize
	// DefaultBlockSize is the default compression_block_size: bytes are
	// accumulated up to this many before a block is emitted.
	DefaultBlockSize = 1 << 20
)

var endian = binary.LittleEndian

// ChecksumMismatchError reports a failed CityHash-128 verification on a
// received compression block; it is always fatal to the session.
type ChecksumMismatchError struct {
	WantLo, WantHi uint64
	GotLo, GotHi   uint64
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("lz4frame: checksum mismatch: header declares %016x%016x, computed %016x%016x",
		e.WantHi, e.WantLo, e.GotHi, e.GotLo)
}

// UnknownMethodError reports an algorithm tag this driver does not know how
// to decode.
type UnknownMethodError struct{ Tag byte }

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("lz4frame: unknown compression method tag 0x%02x", e.Tag)
}

// EncodeBlock compresses src with LZ4 and appends the framed block
// (checksum, header, payload) to dst, returning the grown slice.
func EncodeBlock(dst, src []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(src))
	if bound < 1 {
		bound = 1
	}
	start := len(dst)
	dst = append(dst, make([]byte, HeaderSize+bound)...)
	body := dst[start+HeaderSize:]

	var c lz4.Compressor
	n, err := c.CompressBlock(src, body)
	if err != nil {
		return dst[:start], err
	}

	method := MethodLZ4
	compressedSize := n
	if n == 0 || n >= len(src) {
		// Not compressible (including the empty-input case): store raw
		// bytes behind the NONE tag, same framing otherwise.
		copy(body, src)
		compressedSize = len(src)
		method = MethodNone
	}

	frame := dst[start : start+HeaderSize+compressedSize]
	header := frame[checksumSize:]
	header[0] = byte(method)
	endian.PutUint32(header[1:5], uint32(compressHeaderSize+compressedSize))
	endian.PutUint32(header[5:9], uint32(len(src)))

	lo, hi := cityhash.Hash128(header)
	endian.PutUint64(frame[0:8], lo)
	endian.PutUint64(frame[8:16], hi)

	return dst[:start+HeaderSize+compressedSize], nil
}

// PeekHeader reads the compressed-size-with-header field out of a buffer
// that is known to hold at least HeaderSize bytes, letting the caller know
// how many more bytes to gather before calling DecodeBlock.
func PeekHeader(block []byte) (compressedSizeWithHeader int, err error) {
	if len(block) < HeaderSize {
		return 0, fmt.Errorf("lz4frame: header needs %d bytes, have %d", HeaderSize, len(block))
	}
	n := endian.Uint32(block[checksumSize+1 : checksumSize+5])
	return int(n), nil
}

// DecodeBlock verifies the checksum of a complete framed block (header plus
// compressed payload, i.e. block[:HeaderSize+compressedSize]) and appends
// the decompressed bytes to dst.
func DecodeBlock(dst, block []byte) ([]byte, error) {
	if len(block) < HeaderSize {
		return nil, fmt.Errorf("lz4frame: block shorter than header: %d bytes", len(block))
	}
	wantLo := endian.Uint64(block[0:8])
	wantHi := endian.Uint64(block[8:16])
	header := block[checksumSize:]

	gotLo, gotHi := cityhash.Hash128(block[checksumSize:])
	if gotLo != wantLo || gotHi != wantHi {
		return nil, &ChecksumMismatchError{WantLo: wantLo, WantHi: wantHi, GotLo: gotLo, GotHi: gotHi}
	}

	method := Method(header[0])
	compressedSizeWithHeader := int(endian.Uint32(header[1:5]))
	uncompressedSize := int(endian.Uint32(header[5:9]))
	payload := block[HeaderSize : checksumSize+compressedSizeWithHeader]

	switch method {
	case MethodLZ4:
		start := len(dst)
		dst = append(dst, make([]byte, uncompressedSize)...)
		n, err := lz4.UncompressBlock(payload, dst[start:])
		if err != nil {
			return nil, err
		}
		return dst[:start+n], nil
	case MethodNone:
		return append(dst, payload...), nil
	default:
		return nil, &UnknownMethodError{Tag: byte(method)}
	}
}
