package entropy

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/getmockd/tempoid/pkg/logging"
	"github.com/getmockd/tempoid/pkg/metrics"
)

// DefaultMultiplier is how many requests of the triggering size a freshly
// allocated buffer can serve.
const DefaultMultiplier = 64

// ErrSource wraps failures of the underlying random source.
var ErrSource = errors.New("entropy source failed")

// ErrTooLarge is returned when a request cannot be buffered because
// size*multiplier overflows int.
var ErrTooLarge = errors.New("entropy request too large")

// Stats is a snapshot of pool activity.
type Stats struct {
	Allocations int    `json:"allocations"`
	Refills     int    `json:"refills"`
	BytesServed uint64 `json:"bytesServed"`
	BufferSize  int    `json:"bufferSize"`
}

// Pool is a lock-protected buffer of secure random bytes.
type Pool struct {
	mu     sync.Mutex
	buf    []byte
	cursor int
	stats  Stats

	source     io.Reader
	multiplier int
	log        *slog.Logger
}

// Option configures a Pool.
type Option func(*Pool)

// WithSource replaces crypto/rand.Reader. Tests use it to inject deterministic
// or failing sources.
func WithSource(r io.Reader) Option {
	return func(p *Pool) {
		p.source = r
	}
}

// WithMultiplier sets the oversubscription factor used when the buffer is
// allocated or grown. Values below 1 are ignored.
func WithMultiplier(k int) Option {
	return func(p *Pool) {
		if k >= 1 {
			p.multiplier = k
		}
	}
}

// WithLogger sets the logger for refill and failure events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPool creates an empty pool. No random bytes are read until the first Take.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		source:     rand.Reader,
		multiplier: DefaultMultiplier,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultPool = sync.OnceValue(func() *Pool { return NewPool() })

// Default returns the process-wide pool backed by crypto/rand, creating it on
// first use.
func Default() *Pool {
	return defaultPool()
}

// Take returns size fresh random bytes. The returned slice is owned by the
// caller.
func (p *Pool) Take(size int) ([]byte, error) {
	if size <= 0 {
		return []byte{}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case len(p.buf) == 0 || len(p.buf) < size:
		if err := p.allocate(size); err != nil {
			return nil, err
		}
	case len(p.buf)-p.cursor < size:
		if err := p.refill(); err != nil {
			return nil, err
		}
	}

	out := make([]byte, size)
	copy(out, p.buf[p.cursor:p.cursor+size])
	p.cursor += size
	p.stats.BytesServed += uint64(size)

	if metrics.PoolBytesServed != nil {
		_ = metrics.PoolBytesServed.Add(float64(size))
	}
	return out, nil
}

// allocate replaces the buffer with a new one of size*multiplier bytes. On
// failure the previous buffer and cursor are left as they were.
func (p *Pool) allocate(size int) error {
	if size > math.MaxInt/p.multiplier {
		return fmt.Errorf("%w: %d bytes with multiplier %d", ErrTooLarge, size, p.multiplier)
	}
	buf := make([]byte, size*p.multiplier)
	if _, err := io.ReadFull(p.source, buf); err != nil {
		p.log.Error("entropy pool allocation failed", "bytes", len(buf), "error", err)
		metrics.CountError("entropy")
		return fmt.Errorf("%w: allocating %d bytes: %w", ErrSource, len(buf), err)
	}

	p.buf = buf
	p.cursor = 0
	p.stats.Allocations++
	p.stats.BufferSize = len(buf)
	p.log.Debug("entropy pool allocated", "bytes", len(buf), "request", size)

	if metrics.PoolRefills != nil {
		if vec, err := metrics.PoolRefills.WithLabels("alloc"); err == nil {
			_ = vec.Inc()
		}
	}
	if metrics.PoolBufferBytes != nil {
		_ = metrics.PoolBufferBytes.Set(float64(len(buf)))
	}
	return nil
}

// refill overwrites the whole buffer in place. A failed read may have
// overwritten part of the buffer with bytes of unknown quality, so the buffer
// is marked exhausted and the next Take refills again.
func (p *Pool) refill() error {
	if _, err := io.ReadFull(p.source, p.buf); err != nil {
		p.cursor = len(p.buf)
		p.log.Error("entropy pool refill failed", "bytes", len(p.buf), "error", err)
		metrics.CountError("entropy")
		return fmt.Errorf("%w: refilling %d bytes: %w", ErrSource, len(p.buf), err)
	}

	discarded := len(p.buf) - p.cursor
	p.cursor = 0
	p.stats.Refills++
	p.log.Debug("entropy pool refilled", "bytes", len(p.buf), "discarded", discarded)

	if metrics.PoolRefills != nil {
		if vec, err := metrics.PoolRefills.WithLabels("refill"); err == nil {
			_ = vec.Inc()
		}
	}
	return nil
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Available returns the number of unread bytes in the buffer.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf) - p.cursor
}
