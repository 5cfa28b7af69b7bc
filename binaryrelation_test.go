package brwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTestBinaryRelation builds the 40-pair, 12-object, 10-label (label 5
// unused) relation used throughout this file's test matrix:
//
//	   |0|1|2|3|4|5|6|7|8|9|
//	 0 |_|_|_|_|x|_|_|_|x|_|
//	 1 |_|_|x|_|x|_|_|_|_|_|
//	 2 |_|_|_|_|x|_|_|_|_|_|
//	 3 |_|_|x|_|x|_|x|_|_|_|
//	 4 |_|_|x|_|x|_|_|x|x|_|
//	 5 |_|x|_|x|_|_|_|_|x|x|
//	 6 |x|_|x|_|_|_|_|_|_|_|
//	 7 |_|x|_|x|_|_|x|_|x|_|
//	 8 |_|x|_|x|x|_|_|x|x|x|
//	 9 |x|_|x|_|_|_|x|x|_|_|
//	10 |_|_|_|x|x|_|_|x|_|x|
//	11 |_|x|x|_|x|_|_|x|_|_|
func makeTestBinaryRelation(t *testing.T) *BinaryRelation {
	t.Helper()
	rows := [][]int{
		{4, 8},
		{2, 4},
		{4},
		{2, 4, 6},
		{2, 4, 7, 8},
		{1, 3, 8, 9},
		{0, 2},
		{1, 3, 6, 8},
		{1, 3, 4, 7, 8, 9},
		{0, 2, 6, 7},
		{3, 4, 7, 9},
		{1, 2, 4, 8},
	}
	var pairs []PairType
	for obj, labels := range rows {
		for _, lab := range labels {
			pairs = append(pairs, PairType{Object: ObjectID(obj), Label: LabelID(lab)})
		}
	}
	require.Len(t, pairs, 40)

	br, err := NewBinaryRelation(pairs)
	require.NoError(t, err)
	return br
}

func TestBinaryRelationConstructorFromPairs(t *testing.T) {
	pairs := []PairType{
		{Object: 0, Label: 1},
		{Object: 1, Label: 2},
		{Object: 0, Label: 3},
		{Object: 0, Label: 4},
	}
	br, err := NewBinaryRelation(pairs)
	require.NoError(t, err)
	assert.Equal(t, 4, br.Size())
	assert.Equal(t, 2, br.ObjectAlphabetSize())
}

func TestBinaryRelationRejectsDuplicatePairs(t *testing.T) {
	pairs := []PairType{
		{Object: 0, Label: 1},
		{Object: 0, Label: 1},
	}
	_, err := NewBinaryRelation(pairs)
	assert.Error(t, err)
}

func TestBinaryRelationSizeAndObjectCount(t *testing.T) {
	br := makeTestBinaryRelation(t)
	assert.Equal(t, 40, br.Size())
	assert.Equal(t, 12, br.ObjectAlphabetSize())
}

func TestBinaryRelationRankMaxObjectMaxLabel(t *testing.T) {
	br := makeTestBinaryRelation(t)

	assert.Equal(t, 0, br.Rank(0, 0))
	assert.Equal(t, 2, br.Rank(0, 9))
	assert.Equal(t, 2, br.Rank(11, 0))

	assert.Equal(t, 1, br.Rank(1, 2))
	assert.Equal(t, 1, br.Rank(2, 3))
	assert.Equal(t, 6, br.Rank(3, 4))
	assert.Equal(t, 16, br.Rank(7, 6))
	assert.Equal(t, 8, br.Rank(8, 2))
	assert.Equal(t, 11, br.Rank(8, 3))

	assert.Equal(t, 14, br.Rank(7, 4))
	assert.Equal(t, 14, br.Rank(7, 5))
	assert.Equal(t, 16, br.Rank(7, 6))
	assert.Equal(t, 24, br.Rank(11, 4))
	assert.Equal(t, 24, br.Rank(11, 5))
	assert.Equal(t, 27, br.Rank(11, 6))

	assert.Equal(t, 33, br.Rank(10, 8))
	assert.Equal(t, 36, br.Rank(10, 9))
	assert.Equal(t, 37, br.Rank(11, 8))
	assert.Equal(t, 40, br.Rank(11, 9))
}

func TestBinaryRelationObjRankConsistentWithRank(t *testing.T) {
	br := makeTestBinaryRelation(t)
	// obj_rank for a fixed label, summed over the whole label alphabet,
	// must reproduce rank(maxObject, maxLabel) for maxLabel = alphabet max.
	total := 0
	for l := 0; l < br.LabelAlphabetSize(); l++ {
		total += br.ObjRank(11, LabelID(l))
	}
	assert.Equal(t, br.Rank(11, LabelID(br.LabelAlphabetSize()-1)), total)
}

func TestBinaryRelationObjSelectRoundTrips(t *testing.T) {
	br := makeTestBinaryRelation(t)

	// label 4 is associated with objects 0,1,2,3,4,8,10,11 in increasing order.
	want := []ObjectID{0, 1, 2, 3, 4, 8, 10, 11}
	for i, w := range want {
		obj, ok := br.ObjSelect(0, 4, i+1)
		require.True(t, ok)
		assert.Equal(t, w, obj)
	}
	_, ok := br.ObjSelect(0, 4, len(want)+1)
	assert.False(t, ok)
}

func TestBinaryRelationCountDistinctLabels(t *testing.T) {
	br := makeTestBinaryRelation(t)
	// label 5 never occurs, so over the whole relation only 9 distinct
	// labels appear.
	got := br.CountDistinctLabels(0, 11, 0, 9)
	assert.Equal(t, 9, got)
}

func TestBinaryRelationNthElementObjectMajor(t *testing.T) {
	br := makeTestBinaryRelation(t)

	// object 0's only pairs are (0,4) and (0,8); restricting to labels
	// [0,9] starting from object 0 must surface them first, in label order.
	p, ok := br.NthElementObjectMajor(0, 0, 9, 1)
	require.True(t, ok)
	assert.Equal(t, PairType{Object: 0, Label: 4}, p)

	p, ok = br.NthElementObjectMajor(0, 0, 9, 2)
	require.True(t, ok)
	assert.Equal(t, PairType{Object: 0, Label: 8}, p)
}

func TestBinaryRelationLowerBoundObjectMajor(t *testing.T) {
	br := makeTestBinaryRelation(t)

	// (0,5) is not a pair; the first pair of object 0 at or after it is
	// (0,8), so searching from (0,5) returns it.
	p, ok := br.LowerBoundObjectMajor(0, 9, PairType{Object: 0, Label: 5})
	require.True(t, ok)
	assert.Equal(t, PairType{Object: 0, Label: 8}, p)

	// object 0 has no pair with label > 8, so the search must roll over
	// into object 1's block.
	p, ok = br.LowerBoundObjectMajor(0, 9, PairType{Object: 0, Label: 9})
	require.True(t, ok)
	assert.Equal(t, ObjectID(1), p.Object)
}
