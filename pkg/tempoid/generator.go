package tempoid

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/getmockd/tempoid/internal/entropy"
	"github.com/getmockd/tempoid/pkg/alphabet"
	"github.com/getmockd/tempoid/pkg/basen"
	"github.com/getmockd/tempoid/pkg/logging"
	"github.com/getmockd/tempoid/pkg/metrics"
)

// Generator produces identifiers. It is safe for concurrent use; the only
// shared state is its ByteSource.
type Generator struct {
	src ByteSource
	now func() time.Time
	log *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithByteSource sets where random bytes come from. The default is the
// process-wide entropy pool.
func WithByteSource(src ByteSource) Option {
	return func(g *Generator) {
		if src != nil {
			g.src = src
		}
	}
}

// WithRandomReader gives the generator its own entropy pool reading from r.
func WithRandomReader(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.src = entropy.NewPool(entropy.WithSource(r))
		}
	}
}

// WithClock sets the clock used when Config.Time is zero.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the logger for rejected configurations and failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		now: time.Now,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.src == nil {
		g.src = entropy.Default()
	}
	return g
}

// Generate returns an identifier with DefaultConfig.
func (g *Generator) Generate() (ID, error) {
	return g.GenerateCustom(DefaultConfig())
}

// GenerateWithAlphabet returns an identifier with the default lengths and
// timing, written in a.
func (g *Generator) GenerateWithAlphabet(a string) (ID, error) {
	cfg := DefaultConfig()
	cfg.Alphabet = a
	return g.GenerateCustom(cfg)
}

// GenerateCustom returns an identifier shaped by cfg.
func (g *Generator) GenerateCustom(cfg Config) (ID, error) {
	if err := cfg.Validate(); err != nil {
		g.log.Warn("rejected identifier config", "error", err)
		metrics.CountError("config")
		return ID{}, err
	}

	ts, err := g.timeSegment(cfg)
	if err != nil {
		metrics.CountError("config")
		return ID{}, err
	}

	rs, err := randomSegment(g.src, cfg.RandomLength, cfg.Alphabet)
	if err != nil {
		g.log.Error("random segment failed", "length", cfg.RandomLength, "error", err)
		return ID{}, fmt.Errorf("generate random segment: %w", err)
	}

	if metrics.IDsGenerated != nil {
		if vec, err := metrics.IDsGenerated.WithLabels(strconv.Itoa(alphabet.Size(cfg.Alphabet))); err == nil {
			_ = vec.Inc()
		}
	}
	return ID{s: ts + rs}, nil
}

// MustGenerate is like Generate but panics on error.
func (g *Generator) MustGenerate() ID {
	return must(g.Generate())
}

// MustGenerateCustom is like GenerateCustom but panics on error.
func (g *Generator) MustGenerateCustom(cfg Config) ID {
	return must(g.GenerateCustom(cfg))
}

// timestamp returns the effective millisecond timestamp for cfg. Subtracting a
// later StartTime wraps around.
func (g *Generator) timestamp(cfg Config) uint64 {
	t := cfg.Time
	if t.IsZero() {
		t = g.now()
	}
	ms := uint64(t.UnixMilli())
	if !cfg.StartTime.IsZero() {
		ms -= uint64(cfg.StartTime.UnixMilli())
	}
	return ms
}

func (g *Generator) timeSegment(cfg Config) (string, error) {
	if cfg.TimeLength == 0 {
		return "", nil
	}

	maxValue, err := basen.MaxValue(cfg.TimeLength, alphabet.Size(cfg.Alphabet))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTimeLengthOverflow, err)
	}

	ms := g.timestamp(cfg)
	if maxValue != math.MaxUint64 {
		ms %= maxValue + 1
	}

	s := basen.Encode(ms, cfg.Alphabet)
	if cfg.PadLeft {
		s = basen.Pad(s, cfg.TimeLength, cfg.Alphabet)
	}
	return s, nil
}

func must(id ID, err error) ID {
	if err != nil {
		panic(err)
	}
	return id
}

var defaultGenerator = sync.OnceValue(func() *Generator { return New() })

// Default returns the package-level generator backed by the process-wide
// entropy pool.
func Default() *Generator {
	return defaultGenerator()
}

// Generate returns an identifier from the default generator with DefaultConfig.
func Generate() (ID, error) {
	return Default().Generate()
}

// GenerateWithAlphabet returns an identifier from the default generator
// written in a.
func GenerateWithAlphabet(a string) (ID, error) {
	return Default().GenerateWithAlphabet(a)
}

// GenerateCustom returns an identifier from the default generator shaped by cfg.
func GenerateCustom(cfg Config) (ID, error) {
	return Default().GenerateCustom(cfg)
}

// MustGenerate is like Generate but panics on error.
func MustGenerate() ID {
	return Default().MustGenerate()
}
