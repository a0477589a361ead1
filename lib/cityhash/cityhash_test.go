package cityhash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash128Deterministic(t *testing.T) {
	inputs := [][]byte{
		{},
		[]byte("a"),
		[]byte("clickhouse"),
		bytes.Repeat([]byte{0x42}, 15),
		bytes.Repeat([]byte{0x42}, 16),
		bytes.Repeat([]byte{0x7}, 32),
		bytes.Repeat([]byte("0123456789abcdef"), 4),
		bytes.Repeat([]byte{0xff}, 127),
		bytes.Repeat([]byte{0xff}, 128),
		bytes.Repeat([]byte{0xab}, 1000),
	}
	for _, in := range inputs {
		lo1, hi1 := Hash128(in)
		lo2, hi2 := Hash128(in)
		require.Equal(t, lo1, lo2)
		require.Equal(t, hi1, hi2)
	}
}

func TestHash128SensitiveToSingleByte(t *testing.T) {
	base := bytes.Repeat([]byte{0x11}, 200)
	lo1, hi1 := Hash128(base)

	mutated := append([]byte{}, base...)
	mutated[100] ^= 0x01
	lo2, hi2 := Hash128(mutated)

	require.False(t, lo1 == lo2 && hi1 == hi2, "flipping one bit must change the digest")
}

func TestHash128DistinguishesLengths(t *testing.T) {
	seen := map[[2]uint64]bool{}
	for n := 0; n < 200; n++ {
		buf := bytes.Repeat([]byte{0x5a}, n)
		lo, hi := Hash128(buf)
		seen[[2]uint64{lo, hi}] = true
	}
	require.Greater(t, len(seen), 190, "digests for distinct lengths of the same filler byte should essentially never collide")
}

func TestHash128WithSeedDiffersFromUnseeded(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated for length")
	lo1, hi1 := Hash128(data)
	lo2, hi2 := Hash128WithSeed(data, 1, 2)
	require.False(t, lo1 == lo2 && hi1 == hi2)
}

func TestHash128AcrossSizeClassBoundaries(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 7, 8, 15, 16, 17, 31, 32, 33, 63, 64, 65, 87, 88, 89, 127, 128, 129, 255, 256} {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(i * 31)
		}
		lo, hi := Hash128(buf)
		require.False(t, lo == 0 && hi == 0, "digest of length %d collapsed to zero", n)
	}
}
