package metrics

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	t.Run("without labels", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("test_counter", "A test counter")

		require.NoError(t, c.Inc())
		require.NoError(t, c.Inc())
		require.NoError(t, c.Add(3))

		samples := c.Collect()
		require.Len(t, samples, 1)
		assert.Equal(t, float64(5), samples[0].Value)
		assert.Equal(t, float64(5), c.Value())
	})

	t.Run("with labels", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("pool_refills", "Refills", "kind")

		vec, err := c.WithLabels("alloc")
		require.NoError(t, err)
		require.NoError(t, vec.Inc())
		vec, _ = c.WithLabels("refill")
		require.NoError(t, vec.Add(4))

		assert.Equal(t, float64(1), c.Value("alloc"))
		assert.Equal(t, float64(4), c.Value("refill"))
		assert.Equal(t, float64(0), c.Value("unknown"))
		assert.Len(t, c.Collect(), 2)
	})

	t.Run("label count mismatch", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("labeled", "Labeled", "kind")

		_, err := c.WithLabels()
		assert.True(t, errors.Is(err, ErrLabelCountMismatch))
		assert.True(t, errors.Is(c.Inc(), ErrLabelCountMismatch))
	})

	t.Run("negative add", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("neg", "Negative")
		assert.True(t, errors.Is(c.Add(-1), ErrNegativeCounterValue))
	})
}

func TestGauge(t *testing.T) {
	r := NewRegistry()
	g := r.NewGauge("buffer_bytes", "Buffer size")

	require.NoError(t, g.Set(1024))
	require.NoError(t, g.Add(-24))

	samples := g.Collect()
	require.Len(t, samples, 1)
	assert.Equal(t, float64(1000), samples[0].Value)
	assert.Equal(t, MetricTypeGauge, g.Type())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.NewCounter("dup", "first")
	assert.Panics(t, func() { r.NewGauge("dup", "second") })
}

func TestRegistry_WriteTo(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("ids_total", "IDs\nproduced", "alphabet_size")
	vec, _ := c.WithLabels("62")
	_ = vec.Add(3)
	r.NewGauge("empty_gauge", "never set")

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.Contains(t, out, "# HELP ids_total IDs\\nproduced\n")
	assert.Contains(t, out, "# TYPE ids_total counter\n")
	assert.Contains(t, out, `ids_total{alphabet_size="62"} 3`)
	assert.NotContains(t, out, "empty_gauge")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestRegistry_WriteToError(t *testing.T) {
	r := NewRegistry()
	_ = r.NewCounter("c", "c").Inc()

	_, err := r.WriteTo(failingWriter{})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestConcurrency(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("concurrent", "Concurrent", "worker")

	const workers = 20
	const perWorker = 500

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				vec, _ := c.WithLabels("shared")
				_ = vec.Inc()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(workers*perWorker), c.Value("shared"))
}

func TestDefaultMetrics(t *testing.T) {
	Reset()
	defer Reset()

	assert.Nil(t, DefaultRegistry())
	CountError("entropy") // no-op before Init

	r := Init()
	require.NotNil(t, r)
	assert.Same(t, r, Init())
	assert.Same(t, r, DefaultRegistry())

	require.NotNil(t, IDsGenerated)
	require.NotNil(t, RandomRejections)
	require.NotNil(t, PoolRefills)
	require.NotNil(t, PoolBytesServed)
	require.NotNil(t, PoolBufferBytes)
	require.NotNil(t, ErrorsTotal)

	CountError("entropy")
	assert.Equal(t, float64(1), ErrorsTotal.Value("entropy"))

	var buf strings.Builder
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `tempoid_errors_total{type="entropy"} 1`)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{1.5, "1.5"},
		{1e21, "1e+21"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in))
	}
}

func TestEscapeLabelValue(t *testing.T) {
	assert.Equal(t, `a\"b\\c\nd`, escapeLabelValue("a\"b\\c\nd"))
}

func BenchmarkCounterInc(b *testing.B) {
	c := NewRegistry().NewCounter("bench", "bench")
	for b.Loop() {
		_ = c.Inc()
	}
}

func BenchmarkCounterWithLabels(b *testing.B) {
	c := NewRegistry().NewCounter("bench", "bench", "kind")
	for b.Loop() {
		vec, _ := c.WithLabels("refill")
		_ = vec.Inc()
	}
}
