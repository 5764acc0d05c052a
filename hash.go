package bloom

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/spaolacci/murmur3"
)

const (
	k0 = 17697571051839533707
	k1 = 15128385881502100741
)

// Hasher computes the 64-bit hash code of a key. Equal keys must produce equal
// hash codes.
type Hasher func(key []byte) uint64

// SipHash is the default Hasher: SipHash-2-4 under a fixed key.
func SipHash(key []byte) uint64 { return siphash.Hash(k0, k1, key) }

// XXHash is a Hasher backed by xxHash64.
func XXHash(key []byte) uint64 { return xxhash.Sum64(key) }

// Murmur3 is a Hasher backed by the 64-bit half of MurmurHash3 x64_128.
func Murmur3(key []byte) uint64 { return murmur3.Sum64(key) }

// Hashable is an element that can be stored in a Filter. Equal elements must
// return equal hash codes.
type Hashable interface {
	Hash64() uint64
}

// String is a Hashable string, hashed with SipHash.
type String string

func (s String) Hash64() uint64 { return SipHash(toBytes(string(s))) }

// Bytes is a Hashable byte slice, hashed with SipHash. A nil Bytes is the
// empty key.
type Bytes []byte

func (b Bytes) Hash64() uint64 { return SipHash(b) }

var (
	_ Hashable = String("")
	_ Hashable = Bytes(nil)
)
