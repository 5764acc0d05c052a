package bloom

import (
	"math/rand/v2"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitVecMatchesBitSet(t *testing.T) {
	const nbits = 1000 // not a multiple of 64

	b := newBitVec(nbits)
	require.Equal(t, uint64(nbits), b.len())
	require.Len(t, b.words, 16)

	oracle := bitset.New(nbits)
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 400; i++ {
		pos := r.Uint64N(nbits)
		changed := b.set(pos)
		assert.Equal(t, !oracle.Test(uint(pos)), changed, "pos %d", pos)
		oracle.Set(uint(pos))
	}

	for pos := uint64(0); pos < nbits; pos++ {
		require.Equal(t, oracle.Test(uint(pos)), b.isSet(pos), "pos %d", pos)
	}
	require.Equal(t, uint64(oracle.Count()), b.count())
}

func TestBitVecEdges(t *testing.T) {
	b := newBitVec(64)
	require.Len(t, b.words, 1)

	require.True(t, b.set(0))
	require.True(t, b.set(63))
	require.False(t, b.set(63))

	require.True(t, b.isSet(0))
	require.True(t, b.isSet(63))
	require.False(t, b.isSet(1))
	require.Equal(t, uint64(2), b.count())
}

func TestBitVecOutOfRange(t *testing.T) {
	b := newBitVec(100)

	// 100..127 live in the last word but are not addressable.
	require.Panics(t, func() { b.set(100) })
	require.Panics(t, func() { b.isSet(127) })
	require.Panics(t, func() { b.set(1 << 40) })
	require.Zero(t, b.count())
}
