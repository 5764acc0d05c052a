package bloom

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyncFilterConcurrent(t *testing.T) {
	const (
		writers = 8
		perG    = 500
	)
	f, err := New(writers*perG, WithSeed(31))
	require.NoError(t, err)
	s := NewSync(f)

	var wg sync.WaitGroup
	for g := 0; g < writers; g++ {
		wg.Add(2)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				key := strconv.Itoa(g) + "/" + strconv.Itoa(i)
				if i%2 == 0 {
					s.Add(key)
				} else {
					_ = s.Put(String(key))
				}
			}
		}(g)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				s.Has(strconv.Itoa(g) + "/" + strconv.Itoa(i))
			}
		}(g)
	}
	wg.Wait()

	for g := 0; g < writers; g++ {
		for i := 0; i < perG; i++ {
			key := strconv.Itoa(g) + "/" + strconv.Itoa(i)
			require.True(t, s.Has(key), key)
			ok, err := s.Test(String(key))
			require.NoError(t, err)
			require.True(t, ok, key)
		}
	}
	require.InDelta(t, writers*perG, s.Size(), writers*perG*0.05)
}

func TestSyncFilterNil(t *testing.T) {
	f, err := New(1)
	require.NoError(t, err)
	s := NewSync(f)

	require.ErrorIs(t, s.Put(nil), ErrNilElement)
	_, err = s.Test(nil)
	require.ErrorIs(t, err, ErrNilElement)
}
