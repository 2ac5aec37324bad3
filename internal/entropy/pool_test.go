package entropy

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/getmockd/tempoid/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqReader fills reads with an incrementing byte sequence so tests can tell
// exactly which source bytes were served.
type seqReader struct {
	mu    sync.Mutex
	next  byte
	reads int
	fail  map[int]error // read number (1-based) -> error
}

func (r *seqReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if err, ok := r.fail[r.reads]; ok {
		return 0, err
	}
	for i := range p {
		p[i] = r.next
		r.next++
	}
	return len(p), nil
}

func seq(from, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(from + i)
	}
	return out
}

func TestTake_AllocatesWithMultiplier(t *testing.T) {
	src := &seqReader{}
	p := NewPool(WithSource(src), WithMultiplier(4))

	assert.Equal(t, 0, p.Available())

	got, err := p.Take(3)
	require.NoError(t, err)
	assert.Equal(t, seq(0, 3), got)

	st := p.Stats()
	assert.Equal(t, 1, st.Allocations)
	assert.Equal(t, 0, st.Refills)
	assert.Equal(t, 12, st.BufferSize)
	assert.Equal(t, uint64(3), st.BytesServed)
	assert.Equal(t, 9, p.Available())
	assert.Equal(t, 1, src.reads)
}

func TestTake_DefaultMultiplier(t *testing.T) {
	p := NewPool(WithSource(&seqReader{}))

	_, err := p.Take(26)
	require.NoError(t, err)
	assert.Equal(t, 26*DefaultMultiplier, p.Stats().BufferSize)
}

func TestTake_ServesSequentially(t *testing.T) {
	src := &seqReader{}
	p := NewPool(WithSource(src), WithMultiplier(4))

	for i := 0; i < 4; i++ {
		got, err := p.Take(3)
		require.NoError(t, err)
		assert.Equal(t, seq(i*3, 3), got, "take %d", i)
	}
	assert.Equal(t, 1, src.reads)
	assert.Equal(t, 0, p.Available())
}

func TestTake_RefillDiscardsTail(t *testing.T) {
	src := &seqReader{}
	p := NewPool(WithSource(src), WithMultiplier(4))

	_, err := p.Take(3) // buffer of 12, bytes 0..11
	require.NoError(t, err)
	got, err := p.Take(5)
	require.NoError(t, err)
	assert.Equal(t, seq(3, 5), got)

	// 4 bytes remain (8..11) but 5 are requested: the whole buffer is
	// refilled with 12..23 and the tail is dropped.
	got, err = p.Take(5)
	require.NoError(t, err)
	assert.Equal(t, seq(12, 5), got)

	st := p.Stats()
	assert.Equal(t, 1, st.Allocations)
	assert.Equal(t, 1, st.Refills)
	assert.Equal(t, 12, st.BufferSize, "refill never resizes")
	assert.Equal(t, 2, src.reads)
}

func TestTake_GrowsForLargerRequest(t *testing.T) {
	src := &seqReader{}
	p := NewPool(WithSource(src), WithMultiplier(4))

	_, err := p.Take(2) // 8 bytes
	require.NoError(t, err)

	got, err := p.Take(10)
	require.NoError(t, err)
	assert.Equal(t, seq(8, 10), got)

	st := p.Stats()
	assert.Equal(t, 2, st.Allocations)
	assert.Equal(t, 40, st.BufferSize)
	assert.Equal(t, 30, p.Available())
}

func TestTake_ExactFitDoesNotRefill(t *testing.T) {
	src := &seqReader{}
	p := NewPool(WithSource(src), WithMultiplier(2))

	_, err := p.Take(4)
	require.NoError(t, err)
	got, err := p.Take(4)
	require.NoError(t, err)
	assert.Equal(t, seq(4, 4), got)
	assert.Equal(t, 1, src.reads)
}

func TestTake_NonPositiveSize(t *testing.T) {
	src := &seqReader{}
	p := NewPool(WithSource(src))

	for _, size := range []int{0, -1} {
		got, err := p.Take(size)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Equal(t, 0, src.reads)
}

func TestTake_ReturnsCopy(t *testing.T) {
	p := NewPool(WithSource(&seqReader{}), WithMultiplier(4))

	got, err := p.Take(2)
	require.NoError(t, err)
	got[0], got[1] = 0xAA, 0xAA

	next, err := p.Take(2)
	require.NoError(t, err)
	assert.Equal(t, seq(2, 2), next)
}

func TestTake_ShortReadsAreFilled(t *testing.T) {
	p := NewPool(WithSource(iotest.HalfReader(&seqReader{})), WithMultiplier(4))

	got, err := p.Take(8)
	require.NoError(t, err)
	assert.Equal(t, seq(0, 8), got)
	assert.Equal(t, 32, p.Stats().BufferSize)
}

func TestTake_AllocationFailure(t *testing.T) {
	boom := errors.New("boom")
	src := &seqReader{fail: map[int]error{1: boom}}
	p := NewPool(WithSource(src), WithMultiplier(4))

	_, err := p.Take(4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSource)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, p.Stats().Allocations)
	assert.Equal(t, 0, p.Available())

	got, err := p.Take(4)
	require.NoError(t, err)
	assert.Equal(t, seq(0, 4), got)
}

func TestTake_OversizedRequest(t *testing.T) {
	src := &seqReader{}
	p := NewPool(WithSource(src))

	_, err := p.Take(math.MaxInt / 32)
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Zero(t, src.reads)
	assert.Equal(t, 0, p.Stats().Allocations)

	got, err := p.Take(2)
	require.NoError(t, err)
	assert.Equal(t, seq(0, 2), got)
}

func TestTake_RefillFailureDiscardsBuffer(t *testing.T) {
	src := &seqReader{fail: map[int]error{2: io.ErrUnexpectedEOF}}
	p := NewPool(WithSource(src), WithMultiplier(2))

	_, err := p.Take(4) // bytes 0..7
	require.NoError(t, err)
	_, err = p.Take(4)
	require.NoError(t, err)

	_, err = p.Take(4)
	assert.ErrorIs(t, err, ErrSource)
	assert.Equal(t, 0, p.Available(), "no byte survives a failed refill")

	got, err := p.Take(2)
	require.NoError(t, err)
	assert.Equal(t, seq(8, 2), got)
	assert.Equal(t, 1, p.Stats().Refills)
}

func TestTake_EOFSource(t *testing.T) {
	p := NewPool(WithSource(iotest.ErrReader(io.EOF)))

	_, err := p.Take(1)
	assert.ErrorIs(t, err, ErrSource)
}

// wordReader fills reads with unique big-endian uint32 values.
type wordReader struct {
	mu   sync.Mutex
	next uint32
}

func (r *wordReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(p) - len(p)%4
	for i := 0; i < n; i += 4 {
		binary.BigEndian.PutUint32(p[i:], r.next)
		r.next++
	}
	return n, nil
}

func TestTake_ConcurrentNeverRepeats(t *testing.T) {
	p := NewPool(WithSource(&wordReader{}), WithMultiplier(8))

	const goroutines = 32
	const perGoroutine = 500

	results := make(chan uint32, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				b, err := p.Take(4)
				if err != nil {
					t.Errorf("Take: %v", err)
					return
				}
				results <- binary.BigEndian.Uint32(b)
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint32]bool, goroutines*perGoroutine)
	for w := range results {
		require.False(t, seen[w], "word %d served twice", w)
		seen[w] = true
	}
	assert.Len(t, seen, goroutines*perGoroutine)
	assert.Equal(t, uint64(goroutines*perGoroutine*4), p.Stats().BytesServed)
}

func TestTake_CryptoSource(t *testing.T) {
	p := NewPool()

	a, err := p.Take(32)
	require.NoError(t, err)
	b, err := p.Take(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestDefault_Singleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestTake_Metrics(t *testing.T) {
	metrics.Reset()
	metrics.Init()
	defer metrics.Reset()

	p := NewPool(WithSource(&seqReader{}), WithMultiplier(2))
	for i := 0; i < 3; i++ {
		_, err := p.Take(4)
		require.NoError(t, err)
	}

	assert.Equal(t, float64(1), metrics.PoolRefills.Value("alloc"))
	assert.Equal(t, float64(1), metrics.PoolRefills.Value("refill"))
	assert.Equal(t, float64(12), metrics.PoolBytesServed.Value())
}

func BenchmarkTake(b *testing.B) {
	p := NewPool()
	for b.Loop() {
		_, _ = p.Take(26)
	}
}
