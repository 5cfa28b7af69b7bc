package brwt

import "github.com/succinctgo/brwt/bitseq"

// This file ports the source library's wavelet-tree algorithms: rank and
// count queries over a symbol condition instead of a single symbol, the
// order statistic nth_element, and the leftmost-match search select_first.
// They are expressed as free functions over *WaveletTree and NodeProxy
// rather than methods, matching the header they are grounded on.

func rank0OrZero(n NodeProxy, pos int) int {
	if pos < 0 {
		return 0
	}
	return n.Rank0(pos)
}

// InclusiveRank counts occurrences of symbol in S[0, pos].
func InclusiveRank(wt *WaveletTree, symbol uint64, pos int) int {
	if pos < 0 {
		return 0
	}
	return wt.Rank(symbol, pos)
}

// ExclusiveRank counts occurrences of symbol in S[0, pos).
func ExclusiveRank(wt *WaveletTree, symbol uint64, pos int) int {
	return InclusiveRank(wt, symbol, pos-1)
}

// InclusiveRankCond counts symbols satisfying cond in S[0, pos].
func InclusiveRankCond(wt *WaveletTree, cond SymbolCond, pos int) int {
	if pos < 0 {
		return 0
	}
	if wt.bitsPerSymbol == 0 {
		if cond.allows(0) {
			return pos + 1
		}
		return 0
	}

	return leCount(wt, cond, pos)
}

// ExclusiveRankCond counts symbols satisfying cond in S[0, pos).
func ExclusiveRankCond(wt *WaveletTree, cond SymbolCond, pos int) int {
	return InclusiveRankCond(wt, cond, pos-1)
}

// leCount returns the count of symbols in S[0,pos] that satisfy cond, built
// from countLessEqual: cond.max alone gives countLessEqual(max), cond.min
// alone gives (pos+1) - countLessEqual(min-1), both bounds give
// countLessEqual(max) - countLessEqual(min-1), and no bound gives pos+1.
func leCount(wt *WaveletTree, cond SymbolCond, pos int) int {
	if !cond.hasMax && !cond.hasMin {
		return pos + 1
	}
	if cond.hasMin && cond.hasMax {
		hi := countLessEqual(wt, cond.max, pos)
		var lo int
		if cond.min == 0 {
			lo = 0
		} else {
			lo = countLessEqual(wt, cond.min-1, pos)
		}
		return hi - lo
	}
	if cond.hasMax {
		return countLessEqual(wt, cond.max, pos)
	}
	// hasMin only
	return (pos + 1) - func() int {
		if cond.min == 0 {
			return 0
		}
		return countLessEqual(wt, cond.min-1, pos)
	}()
}

// countLessEqual counts symbols <= v among S[0, pos], descending the tree
// while accumulating counts from fully-qualifying left subtrees.
func countLessEqual(wt *WaveletTree, v uint64, pos int) int {
	node := wt.MakeRoot()
	localPos := pos
	acc := 0
	for {
		bitOfV := v&node.levelMask != 0
		if !bitOfV {
			if node.IsLeaf() {
				return acc + node.Rank0(localPos)
			}
			localPos = node.Rank0(localPos) - 1
			node = node.MakeLHS()
			continue
		}
		leftCount := node.Rank0(localPos)
		acc += leftCount
		if node.IsLeaf() {
			return acc + node.Rank1(localPos)
		}
		localPos = node.Rank1(localPos) - 1
		node = node.MakeRHS()
	}
}

// CountDistinctSymbols counts the distinct symbols appearing in r that
// satisfy cond (pass a zero SymbolCond to accept every symbol).
func CountDistinctSymbols(wt *WaveletTree, r bitseq.IndexRange, cond SymbolCond) int {
	if r.Empty() {
		return 0
	}
	if wt.bitsPerSymbol == 0 {
		if cond.allows(0) {
			return 1
		}
		return 0
	}
	root := wt.MakeRoot()
	return countDistinctRec(root, 0, wt.MaxSymbolID(), r.Begin(), r.End(), cond)
}

func countDistinctRec(n NodeProxy, symLow, symHigh uint64, first, last int, cond SymbolCond) int {
	if first >= last {
		return 0
	}
	if !cond.overlaps(symLow, symHigh) {
		return 0
	}

	zerosBeforeFirst := rank0OrZero(n, first-1)
	zerosBeforeLast := rank0OrZero(n, last-1)

	if n.IsLeaf() {
		count := 0
		if zerosBeforeLast > zerosBeforeFirst && cond.allows(symLow) {
			count++
		}
		onesInRange := (last - first) - (zerosBeforeLast - zerosBeforeFirst)
		if onesInRange > 0 && cond.allows(symLow|1) {
			count++
		}
		return count
	}

	lhs, rhs := n.MakeLHSAndRHS()
	lhsFirst, lhsLast := zerosBeforeFirst, zerosBeforeLast
	onesBeforeFirst := first - zerosBeforeFirst
	onesBeforeLast := last - zerosBeforeLast

	lhsHigh := symLow | (n.levelMask - 1)
	rhsLow := symLow | n.levelMask

	return countDistinctRec(lhs, symLow, lhsHigh, lhsFirst, lhsLast, cond) +
		countDistinctRec(rhs, rhsLow, symHigh, onesBeforeFirst, onesBeforeLast, cond)
}

type pathStep struct {
	node      NodeProxy
	wentRight bool
}

// NthElement returns the symbol and original position of the nth
// (1-indexed) smallest symbol value among r, i.e. the order statistic /
// quantile: if the symbols in r were sorted by value, this is the value at
// offset nth-1 and the position at which that value actually occurs in S
// (ties broken by position). ok is false if nth is out of [1, r.Size()].
func NthElement(wt *WaveletTree, r bitseq.IndexRange, nth int) (symbol uint64, pos int, ok bool) {
	if nth <= 0 || nth > r.Size() {
		return 0, -1, false
	}
	if wt.bitsPerSymbol == 0 {
		return 0, r.Begin() + nth - 1, true
	}

	first, last := r.Begin(), r.End()
	node := wt.MakeRoot()
	var sym uint64
	var path []pathStep

	for {
		zerosBeforeFirst := rank0OrZero(node, first-1)
		zerosBeforeLast := rank0OrZero(node, last-1)
		z := zerosBeforeLast - zerosBeforeFirst

		goLeft := nth <= z
		if !goLeft {
			nth -= z
		}

		if node.IsLeaf() {
			var localPos int
			if goLeft {
				localPos = node.Select0(zerosBeforeFirst + nth)
			} else {
				sym |= node.levelMask
				onesBeforeFirst := first - zerosBeforeFirst
				localPos = node.Select1(onesBeforeFirst + nth)
			}
			return ascendPosition(sym, localPos, path)
		}

		if goLeft {
			path = append(path, pathStep{node: node, wentRight: false})
			first, last = zerosBeforeFirst, zerosBeforeLast
			node = node.MakeLHS()
		} else {
			sym |= node.levelMask
			onesBeforeFirst := first - zerosBeforeFirst
			onesBeforeLast := last - zerosBeforeLast
			path = append(path, pathStep{node: node, wentRight: true})
			first, last = onesBeforeFirst, onesBeforeLast
			node = node.MakeRHS()
		}
	}
}

func ascendPosition(sym uint64, localPos int, path []pathStep) (uint64, int, bool) {
	if localPos < 0 {
		return 0, -1, false
	}
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].wentRight {
			localPos = path[i].node.Select1(localPos + 1)
		} else {
			localPos = path[i].node.Select0(localPos + 1)
		}
		if localPos < 0 {
			return 0, -1, false
		}
	}
	return sym, localPos, true
}

// SelectFirst returns the smallest position >= start whose symbol
// satisfies cond, or -1 if none exists.
func SelectFirst(wt *WaveletTree, start int, cond SymbolCond) int {
	if start < 0 {
		start = 0
	}
	if start >= wt.size {
		return -1
	}
	if wt.bitsPerSymbol == 0 {
		if cond.allows(0) {
			return start
		}
		return -1
	}
	if !cond.overlaps(0, wt.MaxSymbolID()) {
		return -1
	}

	root := wt.MakeRoot()
	pos, ok := selectFirstRec(root, 0, wt.MaxSymbolID(), start, cond)
	if !ok {
		return -1
	}
	return pos
}

func selectFirstRec(n NodeProxy, symLow, symHigh uint64, mappedStart int, cond SymbolCond) (int, bool) {
	if mappedStart >= n.Size() {
		return -1, false
	}

	if n.IsLeaf() {
		lhsAllowed := cond.allows(symLow)
		rhsAllowed := cond.allows(symLow | 1)
		switch {
		case lhsAllowed && rhsAllowed:
			return mappedStart, true
		case lhsAllowed:
			zerosBefore := rank0OrZero(n, mappedStart-1)
			pos := n.Select0(zerosBefore + 1)
			if pos < 0 {
				return -1, false
			}
			return pos, true
		case rhsAllowed:
			zerosBefore := rank0OrZero(n, mappedStart-1)
			onesBefore := mappedStart - zerosBefore
			pos := n.Select1(onesBefore + 1)
			if pos < 0 {
				return -1, false
			}
			return pos, true
		default:
			return -1, false
		}
	}

	lhsHigh := symLow | (n.levelMask - 1)
	rhsLow := symLow | n.levelMask
	lhsAllowed := cond.overlaps(symLow, lhsHigh)
	rhsAllowed := cond.overlaps(rhsLow, symHigh)
	if !lhsAllowed && !rhsAllowed {
		return -1, false
	}

	zerosBeforeStart := rank0OrZero(n, mappedStart-1)
	onesBeforeStart := mappedStart - zerosBeforeStart

	lhs, rhs := n.MakeLHSAndRHS()
	best := -1

	if lhsAllowed {
		if localPos, ok := selectFirstRec(lhs, symLow, lhsHigh, zerosBeforeStart, cond); ok {
			if mapped := n.Select0(localPos + 1); mapped >= 0 {
				best = mapped
			}
		}
	}
	if rhsAllowed {
		if localPos, ok := selectFirstRec(rhs, rhsLow, symHigh, onesBeforeStart, cond); ok {
			if mapped := n.Select1(localPos + 1); mapped >= 0 && (best == -1 || mapped < best) {
				best = mapped
			}
		}
	}

	if best < 0 {
		return -1, false
	}
	return best, true
}
