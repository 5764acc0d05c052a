package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithLoggerWarnsOnceOverCapacity(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f, err := New(3, WithLogger(zap.New(core)), WithSeed(1))
	require.NoError(t, err)

	sized := logs.FilterMessage("bloom filter sized").All()
	require.Len(t, sized, 1)
	require.Equal(t, int64(3), sized[0].ContextMap()["n"])

	for i := 0; i < 3; i++ {
		f.Add(randKey(i))
	}
	require.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	for i := 3; i < 10; i++ {
		f.Add(randKey(i))
	}
	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	require.Equal(t, uint64(3), warns[0].ContextMap()["expected"])
}

func TestNilOptionsKeepDefaults(t *testing.T) {
	c := newConfig([]Option{WithSource(nil), WithHasher(nil), WithLogger(nil)})
	require.NotNil(t, c.src)
	require.NotNil(t, c.hasher)
	require.NotNil(t, c.log)

	f, err := New(10, WithSource(nil), WithHasher(nil), WithLogger(nil))
	require.NoError(t, err)
	f.Add("k")
	require.True(t, f.Has("k"))
}

func TestWithSeedDiffers(t *testing.T) {
	a, err := New(100, WithSeed(1))
	require.NoError(t, err)
	b, err := New(100, WithSeed(2))
	require.NoError(t, err)
	require.NotEqual(t, a.family, b.family)
}

func TestWithLoggerCountsInsertCalls(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f, err := New(2, WithLogger(zap.New(core)), WithSeed(1))
	require.NoError(t, err)

	// One distinct element, inserted more often than the expected count.
	for i := 0; i < 3; i++ {
		require.NoError(t, f.Put(String("same")))
	}
	warns := logs.FilterMessage("bloom filter insert calls exceed the expected element count").All()
	require.Len(t, warns, 1)
	require.Equal(t, uint64(2), warns[0].ContextMap()["expected"])
	require.Equal(t, uint64(3), warns[0].ContextMap()["inserts"])
}
