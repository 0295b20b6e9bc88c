package counter

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_StartsAtZero(t *testing.T) {
	var s Sequence
	assert.Equal(t, uint8(0), s.Next())
	assert.Equal(t, uint8(1), s.Next())
	assert.Equal(t, uint8(2), s.Peek())
}

func TestSequence_WrapsAfter256(t *testing.T) {
	var s Sequence

	seen := make(map[uint8]bool, 256)
	first := s.Next()
	seen[first] = true
	for i := 1; i < 256; i++ {
		v := s.Next()
		require.False(t, seen[v], "value %d repeated before wrap (call %d)", v, i+1)
		seen[v] = true
	}

	assert.Len(t, seen, 256)
	assert.Equal(t, first, s.Next(), "257th call should repeat the first")
}

func TestSequence_WrapsFromMax(t *testing.T) {
	s := New(math.MaxUint8)
	assert.Equal(t, uint8(math.MaxUint8), s.Next())
	assert.Equal(t, uint8(0), s.Next())
}

func TestSequence_ConcurrentCallersSeeDistinctValues(t *testing.T) {
	var s Sequence

	const callers = 256
	values := make([]uint8, callers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			values[i] = s.Next()
		}()
	}
	close(start)
	wg.Wait()

	seen := make(map[uint8]bool, callers)
	for _, v := range values {
		require.False(t, seen[v], "value %d observed twice", v)
		seen[v] = true
	}
	assert.Equal(t, uint8(0), s.Peek(), "256 calls should bring the counter back to 0")
}

func BenchmarkSequenceNext(b *testing.B) {
	var s Sequence
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s.Next()
		}
	})
}
