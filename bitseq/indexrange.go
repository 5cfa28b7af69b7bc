package bitseq

// IndexRange is a half-open range [Begin, End) over positions of a sequence,
// the vocabulary type the wavelet-tree algorithms operate on (ported from
// the original library's index_range).
type IndexRange struct {
	begin int
	size  int
}

// NewIndexRange builds the range [first, last). Panics if first > last.
func NewIndexRange(first, last int) IndexRange {
	if first > last {
		panic("bitseq: invalid index range")
	}
	return IndexRange{begin: first, size: last - first}
}

// Begin returns the inclusive lower bound.
func (r IndexRange) Begin() int { return r.begin }

// End returns the exclusive upper bound.
func (r IndexRange) End() int { return r.begin + r.size }

// Size returns the number of positions in the range.
func (r IndexRange) Size() int { return r.size }

// Empty reports whether the range contains no positions.
func (r IndexRange) Empty() bool { return r.size == 0 }
