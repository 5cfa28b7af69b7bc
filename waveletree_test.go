package brwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/succinctgo/brwt/bitseq"
)

func vectorWithTwoBitsPerElement(t *testing.T) *bitseq.IntVector {
	t.Helper()
	values := []uint64{0, 2, 2, 1, 2, 3, 1, 3, 2, 1, 3, 0, 0, 1, 2, 0, 1, 0, 0, 0, 3, 3, 2, 1}
	vec, err := bitseq.NewIntVector(len(values), 2)
	require.NoError(t, err)
	for i, v := range values {
		vec.Set(i, v)
	}
	return vec
}

func vectorWithThreeBitsPerElement(t *testing.T) *bitseq.IntVector {
	t.Helper()
	s := "EHDHACEEGBCBGCF"
	vec, err := bitseq.NewIntVector(len(s), 3)
	require.NoError(t, err)
	for i := 0; i < len(s); i++ {
		vec.Set(i, uint64(s[i]-'A'))
	}
	return vec
}

func TestWaveletTreeConstructorShape(t *testing.T) {
	wt4 := NewWaveletTree(vectorWithTwoBitsPerElement(t))
	assert.Equal(t, 24, wt4.Size())
	assert.Equal(t, 2, wt4.BitsPerSymbol())
	assert.Equal(t, uint64(3), wt4.MaxSymbolID())

	wt8 := NewWaveletTree(vectorWithThreeBitsPerElement(t))
	assert.Equal(t, 15, wt8.Size())
	assert.Equal(t, 3, wt8.BitsPerSymbol())
	assert.Equal(t, uint64(7), wt8.MaxSymbolID())
}

func TestWaveletTreeAccessSigma4(t *testing.T) {
	wt := NewWaveletTree(vectorWithTwoBitsPerElement(t))
	assert.Equal(t, uint64(2), wt.Access(1))
	assert.Equal(t, uint64(3), wt.Access(7))
	assert.Equal(t, uint64(0), wt.Access(19))
}

func TestWaveletTreeAccessSigma8(t *testing.T) {
	wt := NewWaveletTree(vectorWithThreeBitsPerElement(t))
	assert.Equal(t, uint64('H'-'A'), wt.Access(1))
	assert.Equal(t, uint64('E'-'A'), wt.Access(6))
	assert.Equal(t, uint64('F'-'A'), wt.Access(14))
}

func TestWaveletTreeRankSigma4(t *testing.T) {
	wt := NewWaveletTree(vectorWithTwoBitsPerElement(t))

	assert.Equal(t, 1, wt.Rank(0, 0))
	assert.Equal(t, 1, wt.Rank(0, 8))
	assert.Equal(t, 2, wt.Rank(0, 11))
	assert.Equal(t, 3, wt.Rank(0, 13))
	assert.Equal(t, 7, wt.Rank(0, 23))

	assert.Equal(t, 0, wt.Rank(1, 0))
	assert.Equal(t, 1, wt.Rank(1, 5))
	assert.Equal(t, 3, wt.Rank(1, 12))
	assert.Equal(t, 4, wt.Rank(1, 13))
	assert.Equal(t, 6, wt.Rank(1, 23))

	assert.Equal(t, 0, wt.Rank(2, 0))
	assert.Equal(t, 3, wt.Rank(2, 4))
	assert.Equal(t, 4, wt.Rank(2, 12))
	assert.Equal(t, 6, wt.Rank(2, 22))
	assert.Equal(t, 6, wt.Rank(2, 23))

	assert.Equal(t, 0, wt.Rank(3, 0))
	assert.Equal(t, 0, wt.Rank(3, 4))
	assert.Equal(t, 1, wt.Rank(3, 5))
	assert.Equal(t, 3, wt.Rank(3, 17))
	assert.Equal(t, 5, wt.Rank(3, 23))
}

func TestWaveletTreeRankSigma8(t *testing.T) {
	wt := NewWaveletTree(vectorWithThreeBitsPerElement(t))
	rank := func(sym byte, pos int) int { return wt.Rank(uint64(sym-'A'), pos) }

	assert.Equal(t, 0, rank('A', 0))
	assert.Equal(t, 0, rank('C', 0))
	assert.Equal(t, 1, rank('E', 0))
	assert.Equal(t, 0, rank('G', 0))

	assert.Equal(t, 0, rank('B', 5))
	assert.Equal(t, 0, rank('B', 8))
	assert.Equal(t, 1, rank('B', 9))
	assert.Equal(t, 1, rank('B', 10))
	assert.Equal(t, 2, rank('B', 11))

	assert.Equal(t, 0, rank('C', 4))
	assert.Equal(t, 1, rank('C', 5))
	assert.Equal(t, 3, rank('E', 10))
	assert.Equal(t, 1, rank('G', 10))

	assert.Equal(t, 1, rank('A', 14))
	assert.Equal(t, 2, rank('B', 14))
	assert.Equal(t, 3, rank('C', 14))
	assert.Equal(t, 1, rank('D', 14))
	assert.Equal(t, 3, rank('E', 14))
	assert.Equal(t, 1, rank('F', 14))
	assert.Equal(t, 2, rank('G', 14))
	assert.Equal(t, 2, rank('H', 14))
}

func TestWaveletTreeSelectSigma4(t *testing.T) {
	wt := NewWaveletTree(vectorWithTwoBitsPerElement(t))

	assert.Equal(t, 15, wt.Select(0, 4))
	assert.Equal(t, 4, wt.Select(2, 3))
	assert.Equal(t, 6, wt.Select(1, 2))
	assert.Equal(t, 10, wt.Select(3, 3))
	assert.Equal(t, 8, wt.Select(2, 4))
	assert.Equal(t, 16, wt.Select(1, 5))
	assert.Equal(t, 5, wt.Select(3, 1))

	assert.Equal(t, 19, wt.Select(0, 7))
	assert.Equal(t, 23, wt.Select(1, 6))
	assert.Equal(t, 22, wt.Select(2, 6))
	assert.Equal(t, 21, wt.Select(3, 5))

	assert.Equal(t, -1, wt.Select(0, 8))
	assert.Equal(t, -1, wt.Select(1, 7))
	assert.Equal(t, -1, wt.Select(2, 7))
	assert.Equal(t, -1, wt.Select(3, 6))

	assert.Equal(t, -1, wt.Select(0, 190))
	assert.Equal(t, -1, wt.Select(3, 423))
}

func TestWaveletTreeSelectSigma8(t *testing.T) {
	wt := NewWaveletTree(vectorWithThreeBitsPerElement(t))
	sel := func(sym byte, nth int) int { return wt.Select(uint64(sym-'A'), nth) }

	assert.Equal(t, 4, sel('A', 1))
	assert.Equal(t, -1, sel('A', 2))

	assert.Equal(t, 9, sel('B', 1))
	assert.Equal(t, 11, sel('B', 2))
	assert.Equal(t, -1, sel('B', 3))

	assert.Equal(t, 5, sel('C', 1))
	assert.Equal(t, 10, sel('C', 2))
	assert.Equal(t, 13, sel('C', 3))
	assert.Equal(t, -1, sel('C', 4))

	assert.Equal(t, 2, sel('D', 1))
	assert.Equal(t, -1, sel('D', 2))

	assert.Equal(t, 0, sel('E', 1))
	assert.Equal(t, 6, sel('E', 2))
	assert.Equal(t, 7, sel('E', 3))
	assert.Equal(t, -1, sel('E', 4))

	assert.Equal(t, 14, sel('F', 1))
	assert.Equal(t, -1, sel('F', 2))

	assert.Equal(t, 8, sel('G', 1))
	assert.Equal(t, 12, sel('G', 2))
	assert.Equal(t, -1, sel('G', 3))

	assert.Equal(t, 1, sel('H', 1))
	assert.Equal(t, 3, sel('H', 2))
	assert.Equal(t, -1, sel('H', 3))
}

func TestWaveletTreeDefaultConstructorIsEmpty(t *testing.T) {
	vec, err := bitseq.NewIntVector(0, 0)
	require.NoError(t, err)
	wt := NewWaveletTree(vec)
	assert.Equal(t, 0, wt.Size())
	assert.Equal(t, 0, wt.BitsPerSymbol())
	assert.Equal(t, uint64(0), wt.MaxSymbolID())
}
