package lz4frame

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clickhouse-native/chwire/lib/cityhash"
)

func recomputeChecksum(framed []byte) (uint64, uint64) {
	return cityhash.Hash128(framed[checksumSize:])
}

func roundTrip(t *testing.T, src []byte) {
	t.Helper()
	framed, err := EncodeBlock(nil, src)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(framed), HeaderSize)

	sizeWithHeader, err := PeekHeader(framed)
	require.NoError(t, err)
	require.Equal(t, len(framed)-checksumSize, sizeWithHeader)

	out, err := DecodeBlock(nil, framed)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("x"),
		[]byte("clickhouse clickhouse clickhouse clickhouse"),
		bytes.Repeat([]byte{0xAB}, 4096),
		bytes.Repeat([]byte("incompressible-ish-but-not-quite-0123456789"), 50),
	}
	// genuinely random-looking data defeats LZ4 and exercises the NONE path
	noise := make([]byte, 2048)
	for i := range noise {
		noise[i] = byte((i*2654435761 + 17) >> 3)
	}
	cases = append(cases, noise)

	for _, c := range cases {
		roundTrip(t, c)
	}
}

func TestDecodeBlockDetectsCorruption(t *testing.T) {
	framed, err := EncodeBlock(nil, bytes.Repeat([]byte("corrupt-me"), 100))
	require.NoError(t, err)

	corrupted := append([]byte{}, framed...)
	corrupted[HeaderSize] ^= 0xFF

	_, err = DecodeBlock(nil, corrupted)
	require.Error(t, err)
	var mismatch *ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestDecodeBlockRejectsUnknownMethod(t *testing.T) {
	framed, err := EncodeBlock(nil, []byte("some payload"))
	require.NoError(t, err)

	framed[checksumSize] = 0x7A // neither LZ4, NONE, nor ZSTD
	lo, hi := recomputeChecksum(framed)
	endian.PutUint64(framed[0:8], lo)
	endian.PutUint64(framed[8:16], hi)

	_, err = DecodeBlock(nil, framed)
	require.Error(t, err)
	var unknown *UnknownMethodError
	require.ErrorAs(t, err, &unknown)
}

func TestEncodeDecodeManyBlocksConcatenated(t *testing.T) {
	var stream []byte
	var want [][]byte
	for i := 0; i < 5; i++ {
		src := bytes.Repeat([]byte{byte(i)}, 100*(i+1))
		want = append(want, src)
		var err error
		stream, err = EncodeBlock(stream, src)
		require.NoError(t, err)
	}

	offset := 0
	for _, expected := range want {
		sizeWithHeader, err := PeekHeader(stream[offset:])
		require.NoError(t, err)
		blockLen := checksumSize + sizeWithHeader
		out, err := DecodeBlock(nil, stream[offset:offset+blockLen])
		require.NoError(t, err)
		require.Equal(t, expected, out)
		offset += blockLen
	}
	require.Equal(t, len(stream), offset)
}
