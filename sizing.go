package bloom

import "math"

// DefaultFalsePositiveRate is the target false-positive probability used when
// none is given.
const DefaultFalsePositiveRate = 0.01

// pow(log(2), 2)
const lnsq = 0.480453013918201424667102526326664971730552951594545586866864133623665382259834472199948263443926990932715597661358897481255128413358268503177555294880844290839184664798896404335252423673643658092881230886029639112807153031

// maxBits bounds the bit count by what the runtime can allocate: 2^48 bytes
// of heap on 64-bit platforms, 2^32 on 32-bit ones.
const maxBits = 8 << (32 + 16*(^uint(0)>>63))

// Optimal returns the number of bits, m, and the number of hash functions, k,
// that minimize the false-positive rate of a filter holding n items with
// target probability p.
//
//	m = ceil(-n ln(p) / ln(2)^2)
//	k = ceil(-ln(p) / ln(2))
//
// Both are at least 1, so n == 0 yields a usable (if tiny) filter.
func Optimal(n int, p float64) (m, k uint64, err error) {
	if n < 0 {
		return 0, 0, ErrBadCount
	}
	if !(p > 0 && p < 1) {
		return 0, 0, ErrBadProbability
	}

	bpe := -math.Log(p) / lnsq // bits per element
	mf := math.Ceil(float64(n) * bpe)
	if mf > maxBits-wordBits {
		return 0, 0, ErrSizeOverflow
	}
	kf := math.Ceil(-math.Log(p) / math.Ln2)

	m, k = uint64(mf), uint64(kf)
	if m == 0 {
		m = 1
	}
	if k == 0 {
		k = 1
	}
	return m, k, nil
}

// FalsePositiveRate returns the theoretical false-positive probability of a
// filter with m bits and k hash functions after n insertions:
//
//	(1 - e^(-kn/m))^k
func FalsePositiveRate(m, k, n uint64) float64 {
	if m == 0 {
		return 1
	}
	x := -float64(k) * float64(n) / float64(m)
	return math.Pow(1-math.Exp(x), float64(k))
}

// EstimateCount approximates the number of distinct items inserted into a
// filter with m bits and k hash functions, setBits of which are set:
//
//	n* = -(m/k) ln[1 - X/m]
//
// The algorithm is from http://pubs.acs.org/doi/abs/10.1021/ci600526a. A
// completely full filter reports +Inf.
func EstimateCount(m, k, setBits uint64) float64 {
	if m == 0 || k == 0 {
		return 0
	}
	mf := float64(m)
	return -(mf / float64(k)) * math.Log(1-(float64(setBits)/mf))
}
