package bloom

import "sync"

// SyncFilter is a Filter that is safe for concurrent use. Lookups share a
// read lock; inserts hold the write lock while setting their bits.
type SyncFilter struct {
	mu sync.RWMutex
	f  *Filter
}

// NewSync wraps f. f must not be used directly afterwards.
func NewSync(f *Filter) *SyncFilter {
	return &SyncFilter{f: f}
}

func (s *SyncFilter) Put(e Hashable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Put(e)
}

func (s *SyncFilter) Test(e Hashable) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Test(e)
}

func (s *SyncFilter) AddBytes(key []byte) {
	code := s.f.hasher(key)
	s.mu.Lock()
	s.f.AddHash(code)
	s.mu.Unlock()
}

func (s *SyncFilter) Add(key string) { s.AddBytes(toBytes(key)) }

func (s *SyncFilter) HasBytes(key []byte) bool {
	code := s.f.hasher(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.HasHash(code)
}

func (s *SyncFilter) Has(key string) bool { return s.HasBytes(toBytes(key)) }

// Size returns the approximate number of distinct items in the filter.
func (s *SyncFilter) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Size()
}
