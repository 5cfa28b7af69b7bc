package brwt

import (
	"math/bits"
	"sort"

	"github.com/pkg/errors"

	"github.com/succinctgo/brwt/bitseq"
)

// ObjectID and LabelID are the two coordinates of a binary relation pair.
// Both alphabets are dense integer ranges starting at 0, exactly as the
// wavelet tree and indexed bitmap underneath expect.
type ObjectID int
type LabelID int

// PairType is a single (object, label) point of the relation.
type PairType struct {
	Object ObjectID
	Label  LabelID
}

// BinaryRelation stores a finite set of (object, label) pairs and answers a
// family of rank/select/count queries over them in time logarithmic in the
// label alphabet size, using O(n log(sigma) + n) bits: a wavelet tree over
// the labels kept in object-major, then label-major order, plus a compact
// bitmap mapping each object to its contiguous block of pairs.
//
// BinaryRelation is immutable after construction.
type BinaryRelation struct {
	wt        *WaveletTree
	boundary  *IndexedBitmap
	size      int
	numObject int
	numLabel  int
}

// NewBinaryRelation builds a binary relation from an unordered slice of
// pairs. It returns an error if the same (object, label) pair appears more
// than once, the one runtime-reportable construction failure this package
// defines.
func NewBinaryRelation(pairs []PairType) (*BinaryRelation, error) {
	sorted := make([]PairType, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Object != sorted[j].Object {
			return sorted[i].Object < sorted[j].Object
		}
		return sorted[i].Label < sorted[j].Label
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, errors.Errorf("brwt: duplicate pair (object=%d, label=%d)",
				sorted[i].Object, sorted[i].Label)
		}
	}

	n := len(sorted)
	numObjects, numLabels := 0, 0
	for _, p := range sorted {
		if int(p.Object)+1 > numObjects {
			numObjects = int(p.Object) + 1
		}
		if int(p.Label)+1 > numLabels {
			numLabels = int(p.Label) + 1
		}
	}

	degrees := make([]int, numObjects)
	for _, p := range sorted {
		degrees[p.Object]++
	}

	boundarySeq := bitseq.NewBitSequence(numObjects + n)
	pos := 0
	for x := 0; x < numObjects; x++ {
		boundarySeq.Set(pos, true)
		pos++
		for j := 0; j < degrees[x]; j++ {
			pos++
		}
	}

	bpe := 0
	if numLabels > 1 {
		bpe = bits.Len(uint(numLabels - 1))
	}
	labelVec, err := bitseq.NewIntVector(n, bpe)
	if err != nil {
		panic(err)
	}
	for i, p := range sorted {
		labelVec.Set(i, uint64(p.Label))
	}

	return &BinaryRelation{
		wt:        NewWaveletTree(labelVec),
		boundary:  NewIndexedBitmap(boundarySeq),
		size:      n,
		numObject: numObjects,
		numLabel:  numLabels,
	}, nil
}

// Size returns the number of pairs in the relation.
func (br *BinaryRelation) Size() int { return br.size }

// ObjectAlphabetSize returns the size of the object alphabet (max object + 1).
func (br *BinaryRelation) ObjectAlphabetSize() int { return br.numObject }

// LabelAlphabetSize returns the size of the label alphabet (max label + 1).
func (br *BinaryRelation) LabelAlphabetSize() int { return br.numLabel }

func (br *BinaryRelation) checkObject(x ObjectID) {
	if int(x) < 0 || int(x) >= br.numObject {
		panic("brwt: object id out of range")
	}
}

func (br *BinaryRelation) checkLabel(l LabelID) {
	if int(l) < 0 || int(l) >= br.numLabel {
		panic("brwt: label id out of range")
	}
}

// mapBegin returns the position in the label sequence where object x's
// block of pairs begins.
func (br *BinaryRelation) mapBegin(x ObjectID) int {
	if br.numObject == 0 {
		return 0
	}
	pos := br.boundary.Select1(int(x) + 1)
	return pos - int(x)
}

// mapEnd returns the position just past object x's block of pairs.
func (br *BinaryRelation) mapEnd(x ObjectID) int {
	if int(x)+1 < br.numObject {
		return br.mapBegin(x + 1)
	}
	return br.size
}

// unmap returns the object owning label-sequence position pos.
func (br *BinaryRelation) unmap(pos int) ObjectID {
	q := br.boundary.Select0(pos + 1)
	return ObjectID(br.boundary.Rank1(q) - 1)
}

// Rank counts pairs with object <= maxObject and label <= maxLabel.
func (br *BinaryRelation) Rank(maxObject ObjectID, maxLabel LabelID) int {
	br.checkObject(maxObject)
	br.checkLabel(maxLabel)
	return ExclusiveRankCond(br.wt, LessEqual(uint64(maxLabel)), br.mapEnd(maxObject))
}

// RankObjectRange counts pairs with object in [minObject, maxObject] and
// label <= maxLabel.
func (br *BinaryRelation) RankObjectRange(minObject, maxObject ObjectID, maxLabel LabelID) int {
	br.checkObject(minObject)
	br.checkObject(maxObject)
	br.checkLabel(maxLabel)
	hi := ExclusiveRankCond(br.wt, LessEqual(uint64(maxLabel)), br.mapEnd(maxObject))
	if minObject == 0 {
		return hi
	}
	lo := ExclusiveRankCond(br.wt, LessEqual(uint64(maxLabel)), br.mapBegin(minObject))
	return hi - lo
}

// RankLabelRange counts pairs with object <= maxObject and label in
// [minLabel, maxLabel].
func (br *BinaryRelation) RankLabelRange(maxObject ObjectID, minLabel, maxLabel LabelID) int {
	br.checkObject(maxObject)
	br.checkLabel(minLabel)
	br.checkLabel(maxLabel)
	return ExclusiveRankCond(br.wt, Between(uint64(minLabel), uint64(maxLabel)), br.mapEnd(maxObject))
}

// NthElementObjectMajor finds the nth (1-indexed) pair with object >= x and
// label in [alpha, beta], ordered by object then by label.
func (br *BinaryRelation) NthElementObjectMajor(x ObjectID, alpha, beta LabelID, nth int) (PairType, bool) {
	br.checkObject(x)
	first, last := br.mapBegin(x), br.size
	pos, ok := nthPositionInRange(br.wt, first, last, Between(uint64(alpha), uint64(beta)), nth)
	if !ok {
		return PairType{}, false
	}
	return PairType{Object: br.unmap(pos), Label: LabelID(br.wt.Access(pos))}, true
}

// NthElementLabelMajor finds the nth (1-indexed) pair with object in [x, y]
// and label >= alpha, ordered by label then by object.
func (br *BinaryRelation) NthElementLabelMajor(x, y ObjectID, alpha LabelID, nth int) (PairType, bool) {
	br.checkObject(x)
	br.checkObject(y)
	if nth <= 0 || x > y {
		return PairType{}, false
	}
	first, last := br.mapBegin(x), br.mapEnd(y)
	if first >= last {
		return PairType{}, false
	}
	remaining := nth
	for label := uint64(alpha); label <= br.wt.MaxSymbolID(); label++ {
		before := 0
		if first > 0 {
			before = br.wt.Rank(label, first-1)
		}
		upto := br.wt.Rank(label, last-1)
		count := upto - before
		if remaining <= count {
			pos := br.wt.Select(label, before+remaining)
			return PairType{Object: br.unmap(pos), Label: LabelID(label)}, true
		}
		remaining -= count
	}
	return PairType{}, false
}

// LowerBoundObjectMajor finds the first pair >= start in object-major
// order among pairs with label in [alpha, beta].
func (br *BinaryRelation) LowerBoundObjectMajor(alpha, beta LabelID, start PairType) (PairType, bool) {
	br.checkObject(start.Object)
	cond := Between(uint64(maxLabel(alpha, start.Label)), uint64(beta))
	begin := br.mapBegin(start.Object)
	end := br.mapEnd(start.Object)

	pos := SelectFirst(br.wt, begin, cond)
	if pos < 0 || pos >= end {
		pos = SelectFirst(br.wt, end, Between(uint64(alpha), uint64(beta)))
	}
	if pos < 0 {
		return PairType{}, false
	}
	return PairType{Object: br.unmap(pos), Label: LabelID(br.wt.Access(pos))}, true
}

func maxLabel(a, b LabelID) LabelID {
	if a > b {
		return a
	}
	return b
}

// ObjRank returns the number of pairs with object <= x and the given label.
func (br *BinaryRelation) ObjRank(x ObjectID, label LabelID) int {
	br.checkObject(x)
	br.checkLabel(label)
	return ExclusiveRank(br.wt, uint64(label), br.mapEnd(x))
}

// ObjExclusiveRank returns the number of pairs with object < x and the
// given label.
func (br *BinaryRelation) ObjExclusiveRank(x ObjectID, label LabelID) int {
	br.checkObject(x)
	br.checkLabel(label)
	return ExclusiveRank(br.wt, uint64(label), br.mapBegin(x))
}

// ObjRankLabelRange returns the number of pairs with object <= x and label
// in [minLabel, maxLabel].
func (br *BinaryRelation) ObjRankLabelRange(x ObjectID, minLabel, maxLabel LabelID) int {
	br.checkObject(x)
	br.checkLabel(minLabel)
	br.checkLabel(maxLabel)
	return ExclusiveRankCond(br.wt, Between(uint64(minLabel), uint64(maxLabel)), br.mapEnd(x))
}

// ObjExclusiveRankLabelRange returns the number of pairs with object < x
// and label in [minLabel, maxLabel].
func (br *BinaryRelation) ObjExclusiveRankLabelRange(x ObjectID, minLabel, maxLabel LabelID) int {
	br.checkObject(x)
	br.checkLabel(minLabel)
	br.checkLabel(maxLabel)
	return ExclusiveRankCond(br.wt, Between(uint64(minLabel), uint64(maxLabel)), br.mapBegin(x))
}

// ObjSelect returns the nth smallest object, not less than objectStart,
// associated with the given label. ok is false if no such object exists.
func (br *BinaryRelation) ObjSelect(objectStart ObjectID, label LabelID, nth int) (ObjectID, bool) {
	br.checkObject(objectStart)
	br.checkLabel(label)
	if nth <= 0 {
		return 0, false
	}
	begin := br.mapBegin(objectStart)
	before := 0
	if begin > 0 {
		before = br.wt.Rank(uint64(label), begin-1)
	}
	pos := br.wt.Select(uint64(label), before+nth)
	if pos < 0 {
		return 0, false
	}
	return br.unmap(pos), true
}

// CountDistinctLabels counts the distinct labels among pairs with object in
// [x, y] and label in [alpha, beta].
func (br *BinaryRelation) CountDistinctLabels(x, y ObjectID, alpha, beta LabelID) int {
	br.checkObject(x)
	br.checkObject(y)
	if x > y {
		return 0
	}
	r := bitseq.NewIndexRange(br.mapBegin(x), br.mapEnd(y))
	return CountDistinctSymbols(br.wt, r, Between(uint64(alpha), uint64(beta)))
}

// nthPositionInRange finds the nth (1-indexed) position in [first, last)
// whose symbol satisfies cond, by binary search over the cumulative count
// (monotonic in position), avoiding a bespoke order-statistic traversal.
func nthPositionInRange(wt *WaveletTree, first, last int, cond SymbolCond, nth int) (int, bool) {
	if nth <= 0 || first >= last {
		return -1, false
	}
	base := 0
	if first > 0 {
		base = InclusiveRankCond(wt, cond, first-1)
	}
	total := InclusiveRankCond(wt, cond, last-1) - base
	if nth > total {
		return -1, false
	}

	lo, hi := first, last-1
	for lo < hi {
		mid := lo + (hi-lo)/2
		count := InclusiveRankCond(wt, cond, mid) - base
		if count < nth {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, true
}
