package bloom

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"go.uber.org/zap"
)

var (
	ErrBadCount       = errors.New("bloom: element count must not be negative")
	ErrBadProbability = errors.New("bloom: false-positive probability must be in (0, 1)")
	ErrSizeOverflow   = errors.New("bloom: size computation overflow")
	ErrNilElement     = errors.New("bloom: nil element")
)

// Filter is a Bloom filter.
type Filter struct {
	N uint64  // expected number of items
	P float64 // target false-positive probability

	bits     bitvec     // bit array
	family   []hashFunc // hash functions
	hasher   Hasher     // key hasher for Add and Has
	popcount uint64     // number of set bits
	added    uint64     // number of insert calls, duplicates included
	log      *zap.Logger
}

// New creates a Bloom filter for n items with the default false-positive
// probability of 0.01.
func New(n int, opts ...Option) (*Filter, error) {
	return NewWithRate(n, DefaultFalsePositiveRate, opts...)
}

// NewWithRate creates a new Bloom filter for n items with probability p.
// p should be between 0 and 1 (exclusive) and indicates the probability of
// false positives wanted. n must not be negative; a filter for zero items is
// valid and reports every key as absent.
func NewWithRate(n int, p float64, opts ...Option) (*Filter, error) {
	m, k, err := Optimal(n, p)
	if err != nil {
		return nil, err
	}
	c := newConfig(opts)

	f := &Filter{
		N:      uint64(n),
		P:      p,
		bits:   newBitVec(m),
		family: newFamily(c.src, k),
		hasher: c.hasher,
		log:    c.log,
	}
	f.log.Debug("bloom filter sized",
		zap.Int("n", n),
		zap.Float64("p", p),
		zap.Uint64("bits", m),
		zap.Uint64("hashes", k),
	)
	return f, nil
}

// From creates a filter sized for elems with the default false-positive
// probability and inserts every element.
func From[E Hashable](elems []E, opts ...Option) (*Filter, error) {
	return FromWithRate(elems, DefaultFalsePositiveRate, opts...)
}

// FromWithRate is like From with an explicit false-positive probability.
func FromWithRate[E Hashable](elems []E, p float64, opts ...Option) (*Filter, error) {
	for i, e := range elems {
		if isNil(e) {
			return nil, fmt.Errorf("element %d: %w", i, ErrNilElement)
		}
	}
	f, err := NewWithRate(len(elems), p, opts...)
	if err != nil {
		return nil, err
	}
	for _, e := range elems {
		f.AddHash(e.Hash64())
	}
	return f, nil
}

// Put inserts e into the filter.
func (f *Filter) Put(e Hashable) error {
	if isNil(e) {
		return ErrNilElement
	}
	f.AddHash(e.Hash64())
	return nil
}

// Test reports whether e is possibly in the filter. false means e was
// definitely never inserted.
func (f *Filter) Test(e Hashable) (bool, error) {
	if isNil(e) {
		return false, ErrNilElement
	}
	return f.HasHash(e.Hash64()), nil
}

// isNil reports whether e is nil or holds a nil pointer, map, func or chan.
// A nil slice is an empty key, not a nil element.
func isNil(e Hashable) bool {
	if e == nil {
		return true
	}
	switch v := reflect.ValueOf(e); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// AddHash inserts an element by its precomputed hash code.
func (f *Filter) AddHash(code uint64) {
	m := f.bits.len()
	for _, h := range f.family {
		if f.bits.set(h.index(code, m)) {
			f.popcount++
		}
	}

	f.added++
	if f.added == f.N+1 {
		f.log.Warn("bloom filter insert calls exceed the expected element count",
			zap.Uint64("expected", f.N),
			zap.Uint64("inserts", f.added),
			zap.Float64("p", f.P),
		)
	}
}

// HasHash returns true if an element with the given hash code probably exists
// in the filter.
func (f *Filter) HasHash(code uint64) bool {
	m := f.bits.len()
	for _, h := range f.family {
		if !f.bits.isSet(h.index(code, m)) {
			return false
		}
	}
	return true
}

// AddBytes adds a key to the filter.
func (f *Filter) AddBytes(key []byte) { f.AddHash(f.hasher(key)) }

// Add adds a key to the filter.
func (f *Filter) Add(key string) { f.AddBytes(toBytes(key)) }

// HasBytes returns true if the key probably exists in the filter.
func (f *Filter) HasBytes(key []byte) bool { return f.HasHash(f.hasher(key)) }

// Has returns true if the key probably exists in the filter.
func (f *Filter) Has(key string) bool { return f.HasBytes(toBytes(key)) }

// Size returns the approximate number of distinct items in the filter. It
// stays close to the true count as long as the filter holds no more than N
// items.
func (f *Filter) Size() int {
	n := EstimateCount(f.bits.len(), uint64(len(f.family)), f.popcount)
	if math.IsInf(n, 1) {
		return math.MaxInt
	}
	return int(math.Floor(n + 0.5))
}

// Stats returns the number of hash functions and the number of usable bits.
func (f *Filter) Stats() (hashes, nbits uint64) {
	return uint64(len(f.family)), f.bits.len()
}

// FillRatio returns the fraction of bits that are set.
func (f *Filter) FillRatio() float64 {
	return float64(f.popcount) / float64(f.bits.len())
}

// EstimatedFalsePositiveRate returns the theoretical false-positive
// probability given the number of insert calls made so far.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return FalsePositiveRate(f.bits.len(), uint64(len(f.family)), f.added)
}
