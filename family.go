package bloom

import "math/rand/v2"

// hashFunc is one member of a filter's hash family. It is immutable once
// drawn.
type hashFunc struct {
	seed uint64 // always odd
}

func (h hashFunc) index(code, m uint64) uint64 { return index(code, h.seed, m) }

// newFamily draws k hash functions from src, consuming exactly one value per
// function.
func newFamily(src rand.Source, k uint64) []hashFunc {
	fs := make([]hashFunc, k)
	for i := range fs {
		// Odd, so multiplying by it is a bijection on uint64.
		fs[i] = hashFunc{seed: src.Uint64() | 1}
	}
	return fs
}

// index maps an element's hash code to a bit position in [0, m) by
// multiplying it with seed and reducing the product modulo m. The product is
// run through the MurmurHash3 finalizer first so that members of one family
// are not linear functions of each other.
func index(code, seed, m uint64) uint64 {
	return fmix64(code*seed) % m
}

func fmix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// runtimeSource draws from the auto-seeded, process-wide generator.
type runtimeSource struct{}

func (runtimeSource) Uint64() uint64 { return rand.Uint64() }
