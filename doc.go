/*
Package bloom implements a classic Bloom filter sized from an expected item
count and a target false-positive probability.

A filter answers "possibly present" or "definitely absent". It never reports
an inserted item as absent. For n items and probability p it allocates

	m = ceil(-n ln(p) / ln(2)^2)

bits and uses

	k = ceil(-ln(p) / ln(2))

hash functions. Each hash function is a seed drawn once at construction; the
bit it selects for an item is derived from the item's 64-bit hash code and
that seed. Seeds come from the process-wide random generator unless WithSeed
or WithSource is given, in which case construction is reproducible.

Filter is not safe for concurrent use. Wrap it with NewSync when it is shared
between goroutines.
*/
package bloom
