package brwt

import "github.com/succinctgo/brwt/bitseq"

// WaveletTree encodes a sequence of n symbols over an alphabet of size
// sigma = 2^k as a single level-interleaved bitmap of length n*k (no
// explicit tree pointers): level d occupies [d*n, (d+1)*n) and partitions
// symbols by bit k-1-d (their d-th most significant bit, counting from 0
// at the top). Access, rank and
// select over symbols all run in O(k).
type WaveletTree struct {
	table         *IndexedBitmap
	size          int
	bitsPerSymbol int
}

// NewWaveletTree builds a wavelet tree over the given packed sequence.
// Construction is O(bpe*n).
func NewWaveletTree(seq *bitseq.IntVector) *WaveletTree {
	n := seq.Size()
	w := seq.BitsPerElement()

	table := bitseq.NewBitSequence(n * w)
	if n > 0 && w > 0 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		buildWaveletLevels(order, 0, n, 0, w, n, seq, table)
	}

	return &WaveletTree{
		table:         NewIndexedBitmap(table),
		size:          n,
		bitsPerSymbol: w,
	}
}

// buildWaveletLevels recursively partitions order[begin:begin+size] (a
// permutation of sequence positions already grouped by the bits fixed at
// shallower levels) writing the current level's bit for each element and
// stably partitioning the range into a zeros-then-ones order for the next
// level. `begin` is reused unchanged across levels: each level has the
// same length n, so a node's combined children occupy the same offset
// within the next level that the node itself occupied in this one.
func buildWaveletLevels(order []int, begin, size, depth, w, n int, seq *bitseq.IntVector, table *bitseq.BitSequence) {
	if depth == w || size == 0 {
		return
	}
	shift := uint(w - 1 - depth)
	levelOffset := depth * n

	scratch := make([]int, size)
	numZeros := 0
	for p := 0; p < size; p++ {
		idx := order[begin+p]
		bit := (seq.Get(idx) >> shift) & 1
		table.Set(levelOffset+begin+p, bit != 0)
		if bit == 0 {
			scratch[numZeros] = idx
			numZeros++
		}
	}
	numOnes := 0
	for p := 0; p < size; p++ {
		idx := order[begin+p]
		if (seq.Get(idx)>>shift)&1 != 0 {
			scratch[numZeros+numOnes] = idx
			numOnes++
		}
	}
	copy(order[begin:begin+size], scratch)

	buildWaveletLevels(order, begin, numZeros, depth+1, w, n, seq, table)
	buildWaveletLevels(order, begin+numZeros, numOnes, depth+1, w, n, seq, table)
}

// Size returns the length of the encoded sequence.
func (wt *WaveletTree) Size() int { return wt.size }

// BitsPerSymbol returns the number of bits used per symbol (the tree's
// depth).
func (wt *WaveletTree) BitsPerSymbol() int { return wt.bitsPerSymbol }

// MaxSymbolID returns the largest representable symbol id, 2^k - 1.
func (wt *WaveletTree) MaxSymbolID() uint64 {
	if wt.bitsPerSymbol == 0 {
		return 0
	}
	return (uint64(1) << uint(wt.bitsPerSymbol)) - 1
}

func (wt *WaveletTree) checkSymbol(symbol uint64) {
	if symbol > wt.MaxSymbolID() {
		panic("brwt: symbol out of range")
	}
}

func (wt *WaveletTree) checkPos(pos int) {
	if pos < 0 || pos >= wt.size {
		panic("brwt: position out of range")
	}
}

// MakeRoot returns a proxy to the root node of the tree.
func (wt *WaveletTree) MakeRoot() NodeProxy {
	mask := uint64(0)
	if wt.bitsPerSymbol > 0 {
		mask = uint64(1) << uint(wt.bitsPerSymbol-1)
	}
	return NodeProxy{wt: wt, begin: 0, size: wt.size, onesBefore: 0, levelMask: mask}
}

// Access returns the symbol at the given position.
func (wt *WaveletTree) Access(pos int) uint64 {
	wt.checkPos(pos)
	if wt.bitsPerSymbol == 0 {
		return 0
	}

	node := wt.MakeRoot()
	localPos := pos
	var symbol uint64
	for {
		bit := node.Access(localPos)
		if bit {
			symbol |= node.levelMask
		}
		if node.IsLeaf() {
			break
		}
		if bit {
			localPos = node.Rank1(localPos) - 1
			node = node.MakeRHS()
		} else {
			localPos = node.Rank0(localPos) - 1
			node = node.MakeLHS()
		}
	}
	return symbol
}

// Rank counts the occurrences of symbol in S[0, pos].
func (wt *WaveletTree) Rank(symbol uint64, pos int) int {
	wt.checkSymbol(symbol)
	wt.checkPos(pos)
	if wt.bitsPerSymbol == 0 {
		return pos + 1
	}

	node := wt.MakeRoot()
	localPos := pos
	for {
		goRight := node.IsRHSSymbol(symbol)
		if goRight {
			localPos = node.Rank1(localPos) - 1
		} else {
			localPos = node.Rank0(localPos) - 1
		}
		if node.IsLeaf() {
			return localPos + 1
		}
		if goRight {
			node = node.MakeRHS()
		} else {
			node = node.MakeLHS()
		}
	}
}

// Select finds the position of the nth (1-indexed) occurrence of symbol,
// or -1 if it does not exist.
func (wt *WaveletTree) Select(symbol uint64, nth int) int {
	wt.checkSymbol(symbol)
	if nth <= 0 {
		return -1
	}
	if wt.bitsPerSymbol == 0 {
		if nth > wt.size {
			return -1
		}
		return nth - 1
	}

	type step struct {
		node      NodeProxy
		wentRight bool
	}
	path := make([]step, 0, wt.bitsPerSymbol)

	node := wt.MakeRoot()
	for !node.IsLeaf() {
		goRight := node.IsRHSSymbol(symbol)
		path = append(path, step{node: node, wentRight: goRight})
		if goRight {
			node = node.MakeRHS()
		} else {
			node = node.MakeLHS()
		}
	}

	var localPos int
	if symbol&1 != 0 {
		localPos = node.Select1(nth)
	} else {
		localPos = node.Select0(nth)
	}
	if localPos < 0 {
		return -1
	}

	for i := len(path) - 1; i >= 0; i-- {
		if path[i].wentRight {
			localPos = path[i].node.Select1(localPos + 1)
		} else {
			localPos = path[i].node.Select0(localPos + 1)
		}
		if localPos < 0 {
			return -1
		}
	}
	return localPos
}

// NodeProxy navigates a conceptual node of the wavelet tree without any
// pointers: its state (begin, size, ones-before-begin, level mask) is
// enough to derive both children arithmetically and to forward
// access/rank/select to the tree's single underlying bitmap.
type NodeProxy struct {
	wt         *WaveletTree
	begin      int
	size       int
	onesBefore int
	levelMask  uint64
}

// Size returns the number of positions covered by this node.
func (n NodeProxy) Size() int { return n.size }

// IsLeaf reports whether this node has no materialized children.
func (n NodeProxy) IsLeaf() bool { return n.levelMask <= 1 }

// IsLHSSymbol reports whether symbol's bit at this level is 0.
func (n NodeProxy) IsLHSSymbol(symbol uint64) bool { return symbol&n.levelMask == 0 }

// IsRHSSymbol reports whether symbol's bit at this level is 1.
func (n NodeProxy) IsRHSSymbol(symbol uint64) bool { return !n.IsLHSSymbol(symbol) }

// Access returns the bit at the given position local to this node.
func (n NodeProxy) Access(pos int) bool {
	return n.wt.table.Access(n.begin + pos)
}

// Rank0 counts zeros in this node's own bit array over [0, pos].
func (n NodeProxy) Rank0(pos int) int { return (pos + 1) - n.Rank1(pos) }

// Rank1 counts ones in this node's own bit array over [0, pos].
func (n NodeProxy) Rank1(pos int) int {
	return n.wt.table.Rank1(n.begin+pos) - n.onesBefore
}

// Select0 finds the local position of the nth zero in this node, or -1.
func (n NodeProxy) Select0(nth int) int {
	zerosBefore := n.begin - n.onesBefore
	abs := n.wt.table.Select0(zerosBefore + nth)
	if abs < n.begin || abs >= n.begin+n.size {
		return -1
	}
	return abs - n.begin
}

// Select1 finds the local position of the nth one in this node, or -1.
func (n NodeProxy) Select1(nth int) int {
	abs := n.wt.table.Select1(n.onesBefore + nth)
	if abs < n.begin || abs >= n.begin+n.size {
		return -1
	}
	return abs - n.begin
}

func (n NodeProxy) countZeros() int {
	if n.size == 0 {
		return 0
	}
	return n.Rank0(n.size - 1)
}

// MakeLHS returns a proxy to the left-hand-side child.
func (n NodeProxy) MakeLHS() NodeProxy {
	lhs, _ := n.MakeLHSAndRHS()
	return lhs
}

// MakeRHS returns a proxy to the right-hand-side child.
func (n NodeProxy) MakeRHS() NodeProxy {
	_, rhs := n.MakeLHSAndRHS()
	return rhs
}

// MakeLHSAndRHS returns both children, sharing the rank computation that
// locates the boundary between them. Every complete level has the same
// length n as the root, so the left child always starts exactly n
// positions after this node's own begin.
func (n NodeProxy) MakeLHSAndRHS() (lhs, rhs NodeProxy) {
	beginL := n.begin + n.wt.size
	sizeL := n.countZeros()
	onesBeforeL := 0
	if beginL > 0 {
		onesBeforeL = n.wt.table.Rank1(beginL - 1)
	}
	beginR := beginL + sizeL
	sizeR := n.size - sizeL
	onesBeforeR := n.wt.table.Rank1(beginR - 1)

	childMask := n.levelMask >> 1
	lhs = NodeProxy{wt: n.wt, begin: beginL, size: sizeL, onesBefore: onesBeforeL, levelMask: childMask}
	rhs = NodeProxy{wt: n.wt, begin: beginR, size: sizeR, onesBefore: onesBeforeR, levelMask: childMask}
	return lhs, rhs
}
