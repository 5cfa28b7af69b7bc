// Package brwt implements a layered stack of succinct, pointer-free data
// structures for indexed sequences: an indexed bitmap with constant-time
// rank and near-constant-time select, a wavelet tree over an arbitrary
// finite alphabet, and a compressed binary relation supporting a family of
// ordered-range queries in time logarithmic in the alphabet size.
//
// Every exported type here is immutable after construction and therefore
// safe to share across concurrent readers without synchronization; there is
// no support for dynamic updates (see the package's accompanying design
// notes for the reasoning).
package brwt

import (
	"math"
	"math/bits"

	"github.com/succinctgo/brwt/bitseq"
)

// bitsPerSuperBlock is the width, in bits, of a rank-index super-block.
// Must be a multiple of bitseq.BitsPerBlock.
const bitsPerSuperBlock = 640

// IndexedBitmap augments an immutable bitseq.BitSequence with a two-level
// cumulative-popcount index so that rank0/rank1 run in O(1) and
// select0/select1 run in O(log n) (select1 uses the super-block index;
// select0 falls back to a binary search over rank0, per this module's
// resolution of the source library's open question on the matter).
type IndexedBitmap struct {
	seq         *bitseq.BitSequence
	superBlocks *bitseq.IntVector
}

// NewIndexedBitmap builds the rank/select index over seq. Construction is
// O(n) in the length of seq.
func NewIndexedBitmap(seq *bitseq.BitSequence) *IndexedBitmap {
	n := seq.Len()
	numSuperBlocks := ceilDiv(n, bitsPerSuperBlock) - 1
	if numSuperBlocks < 0 {
		numSuperBlocks = 0
	}

	bm := &IndexedBitmap{seq: seq}

	bpe := 0
	if n > 0 {
		bpe = int(math.Ceil(math.Log2(float64(n))))
	}
	sb, err := bitseq.NewIntVector(numSuperBlocks, bpe)
	if err != nil {
		// n's log2 never reaches bitseq.BitsPerBlock for any length this
		// module can actually represent; a failure here means the caller
		// handed us an impossibly large sequence.
		panic(err)
	}
	bm.superBlocks = sb

	sum := 0
	for i := 0; i < numSuperBlocks; i++ {
		base := i * bitsPerSuperBlock
		for j := 0; j < bitsPerSuperBlock; j += bitseq.BitsPerBlock {
			sum += popcountBlock(seq, (base+j)/bitseq.BitsPerBlock)
		}
		bm.superBlocks.Set(i, uint64(sum))
	}

	return bm
}

func popcountBlock(seq *bitseq.BitSequence, blockIdx int) int {
	return bits.OnesCount64(seq.GetBlock(blockIdx))
}

// Len returns the number of bits in the underlying sequence.
func (bm *IndexedBitmap) Len() int { return bm.seq.Len() }

// Access returns bit i.
func (bm *IndexedBitmap) Access(i int) bool { return bm.seq.Get(i) }

// Rank1 returns the number of 1-bits in [0, i].
func (bm *IndexedBitmap) Rank1(i int) int {
	bm.checkIndex(i)

	sum := 0
	if idx := i/bitsPerSuperBlock - 1; idx >= 0 {
		sum = int(bm.superBlocks.Get(idx))
	}

	currentPos := i - (i % bitsPerSuperBlock)
	for ; currentPos+bitseq.BitsPerBlock <= i; currentPos += bitseq.BitsPerBlock {
		sum += popcountBlock(bm.seq, currentPos/bitseq.BitsPerBlock)
	}
	if currentPos <= i {
		sum += bm.seq.PopCountChunk(currentPos, (i-currentPos)+1)
	}
	return sum
}

// Rank0 returns the number of 0-bits in [0, i].
func (bm *IndexedBitmap) Rank0(i int) int {
	return (i + 1) - bm.Rank1(i)
}

// Select1 returns the position of the nth (1-indexed) 1-bit, or -1 if fewer
// than nth 1-bits exist.
func (bm *IndexedBitmap) Select1(nth int) int {
	n := bm.Len()
	if nth <= 0 || n == 0 {
		return -1
	}

	idx := 0
	count := 0
	{
		first, last := 0, bm.superBlocks.Size()
		sbIdx := -1
		for first < last {
			pos := first + (last-first)/2
			bits := int(bm.superBlocks.Get(pos))
			if bits < nth {
				first = pos + 1
				sbIdx = pos
			} else {
				last = pos
			}
		}
		if sbIdx >= 0 {
			idx = (sbIdx + 1) * bitsPerSuperBlock
			count = int(bm.superBlocks.Get(sbIdx))
		}
	}

	{
		last := idx + bitsPerSuperBlock
		if last > n {
			last = n
		}
		for idx+bitseq.BitsPerBlock < last {
			blockBits := popcountBlock(bm.seq, idx/bitseq.BitsPerBlock)
			if count+blockBits >= nth {
				break
			}
			count += blockBits
			idx += bitseq.BitsPerBlock
		}
	}

	{
		last := n - idx
		if last > bitseq.BitsPerBlock {
			last = bitseq.BitsPerBlock
		}
		first := 0
		diff := 0
		for first < last {
			pos := first + (last-first)/2
			bits := bm.seq.PopCountChunk(idx, pos)
			if count+bits < nth {
				first = pos + 1
				diff = pos
			} else {
				last = pos
			}
		}
		idx += diff
	}

	if idx >= n || bm.Rank1(idx) != nth {
		return -1
	}
	return idx
}

// Select0 returns the position of the nth (1-indexed) 0-bit, or -1 if fewer
// than nth 0-bits exist. Implemented as a binary search over Rank0, per
// this module's resolution of the source library's open question (no
// dedicated two-level 0-index is maintained).
func (bm *IndexedBitmap) Select0(nth int) int {
	n := bm.Len()
	if nth <= 0 || n == 0 {
		return -1
	}
	if nth > bm.Rank0(n-1) {
		return -1
	}

	first, last := 0, n-1
	idx := 0
	for first < last {
		pos := first + (last-first)/2
		if bm.Rank0(pos) < nth {
			first = pos + 1
			idx = pos
		} else {
			last = pos
		}
	}
	for idx < n && bm.Rank0(idx) != nth {
		idx++
	}
	if idx >= n {
		return -1
	}
	return idx
}

func (bm *IndexedBitmap) checkIndex(i int) {
	if i < 0 || i >= bm.Len() {
		panic("brwt: index out of range")
	}
}

func ceilDiv(a, b int) int {
	if a%b == 0 {
		return a / b
	}
	return a/b + 1
}
