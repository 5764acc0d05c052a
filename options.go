package bloom

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// Option configures a Filter at construction.
type Option func(*config)

type config struct {
	src    rand.Source
	hasher Hasher
	log    *zap.Logger
}

func newConfig(opts []Option) config {
	c := config{
		src:    runtimeSource{},
		hasher: SipHash,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithSource draws the hash family's seeds from src instead of the
// process-wide generator. Filters built from sources in the same state behave
// identically.
func WithSource(src rand.Source) Option {
	return func(c *config) {
		if src != nil {
			c.src = src
		}
	}
}

// WithSeed makes construction reproducible by seeding a PCG generator.
func WithSeed(seed uint64) Option {
	return WithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// WithHasher sets the Hasher used by Add, AddBytes, Has and HasBytes.
func WithHasher(h Hasher) Option {
	return func(c *config) {
		if h != nil {
			c.hasher = h
		}
	}
}

// WithLogger sets the logger. Filters are silent by default.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}
