package bitseq

import "github.com/pkg/errors"

// IntVector is a sequence of m unsigned integers, each occupying exactly w
// bits of a shared BitSequence. Element i occupies bits [i*w, i*w+w).
type IntVector struct {
	bits           *BitSequence
	length         int
	bitsPerElement int
}

// NewIntVector allocates a zeroed vector of `length` elements, each `bpe`
// bits wide. It returns an error if bpe is wide enough to equal or exceed
// BitsPerBlock, the one runtime-reportable construction failure this
// package defines (spec.md §7).
func NewIntVector(length, bpe int) (*IntVector, error) {
	if length < 0 {
		panic("bitseq: negative length")
	}
	if bpe < 0 {
		panic("bitseq: negative bits-per-element")
	}
	if bpe >= BitsPerBlock {
		return nil, errors.Errorf("bitseq: bits per element %d must be less than %d", bpe, BitsPerBlock)
	}
	return &IntVector{
		bits:           NewBitSequence(length * bpe),
		length:         length,
		bitsPerElement: bpe,
	}, nil
}

// Size returns the number of stored elements.
func (v *IntVector) Size() int { return v.length }

// BitsPerElement returns the fixed element width w.
func (v *IntVector) BitsPerElement() int { return v.bitsPerElement }

// Get returns element i.
func (v *IntVector) Get(i int) uint64 {
	v.checkIndex(i)
	if v.bitsPerElement == 0 {
		return 0
	}
	return v.bits.GetChunk(i*v.bitsPerElement, v.bitsPerElement)
}

// Set writes value to element i. value must fit in BitsPerElement() bits;
// violating that is a contract violation (spec.md §4.2), not a runtime
// error.
func (v *IntVector) Set(i int, value uint64) {
	v.checkIndex(i)
	if v.bitsPerElement < BitsPerBlock && value>>uint(v.bitsPerElement) != 0 {
		panic("bitseq: value exceeds element width")
	}
	if v.bitsPerElement == 0 {
		return
	}
	v.bits.SetChunk(i*v.bitsPerElement, v.bitsPerElement, value)
}

func (v *IntVector) checkIndex(i int) {
	if i < 0 || i >= v.length {
		panic("bitseq: index out of range")
	}
}
