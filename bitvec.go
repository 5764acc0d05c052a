package bloom

import "math/bits"

const (
	wordBits = 64           // bits per word
	div64    = 6            // division by 64
	mod64    = wordBits - 1 // remainder mod 64
)

// bitvec is a packed, fixed-length bit array. Bits are only ever set.
type bitvec struct {
	words []uint64
	nbits uint64 // number of usable bits
}

func newBitVec(nbits uint64) bitvec {
	return bitvec{
		words: make([]uint64, (nbits+mod64)>>div64),
		nbits: nbits,
	}
}

func (b *bitvec) len() uint64 { return b.nbits }

// set sets bit pos and reports whether it was previously clear.
func (b *bitvec) set(pos uint64) bool {
	b.check(pos)
	mask := uint64(1) << (pos & mod64)
	w := &b.words[pos>>div64]
	if *w&mask != 0 {
		return false
	}
	*w |= mask
	return true
}

func (b *bitvec) isSet(pos uint64) bool {
	b.check(pos)
	return b.words[pos>>div64]&(1<<(pos&mod64)) != 0
}

// count returns the number of set bits.
func (b *bitvec) count() uint64 {
	var n int
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return uint64(n)
}

// check panics if pos is not addressable. The padding bits at the end of the
// last word are not addressable either.
func (b *bitvec) check(pos uint64) {
	if pos >= b.nbits {
		panic("bloom: bit index out of range")
	}
}
