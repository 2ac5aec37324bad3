package metrics

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// ErrDuplicateMetric is returned when registering a metric with a name that is already registered.
var ErrDuplicateMetric = errors.New("duplicate metric name")

// atomicFloat64 stores float64 bits in a uint64 for lock-free updates.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Store(val float64) {
	a.bits.Store(math.Float64bits(val))
}

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := a.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if a.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeGauge   MetricType = "gauge"
)

// Metric is the interface implemented by all metric types.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	// Collect returns all samples for exposition.
	Collect() []Sample
}

// Sample is a single metric value with its labels.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// series holds the per-label-combination values shared by counters and gauges.
type series struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]*seriesValue
}

type seriesValue struct {
	labels map[string]string
	value  atomicFloat64
}

func newSeries(name, help string, labelNames []string) series {
	return series{
		name:       name,
		help:       help,
		labelNames: labelNames,
		values:     make(map[string]*seriesValue),
	}
}

func (s *series) lookup(kind string, values []string) (*seriesValue, error) {
	if len(values) != len(s.labelNames) {
		return nil, fmt.Errorf("%w: %s %s expected %d labels, got %d", ErrLabelCountMismatch, kind, s.name, len(s.labelNames), len(values))
	}

	key := strings.Join(values, "\x00")
	s.mu.RLock()
	sv, ok := s.values[key]
	s.mu.RUnlock()
	if ok {
		return sv, nil
	}

	labels := make(map[string]string, len(s.labelNames))
	for i, name := range s.labelNames {
		labels[name] = values[i]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sv, ok = s.values[key]; !ok {
		sv = &seriesValue{labels: labels}
		s.values[key] = sv
	}
	return sv, nil
}

func (s *series) collect() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	samples := make([]Sample, 0, len(s.values))
	for _, sv := range s.values {
		samples = append(samples, Sample{Name: s.name, Labels: sv.labels, Value: sv.value.Load()})
	}
	sort.Slice(samples, func(i, j int) bool {
		return formatLabels(samples[i].Labels) < formatLabels(samples[j].Labels)
	})
	return samples
}

// Counter is a monotonically increasing metric.
type Counter struct {
	series
}

// Name returns the metric name.
func (c *Counter) Name() string { return c.name }

// Help returns the help text.
func (c *Counter) Help() string { return c.help }

// Type returns the metric type.
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// Collect returns all metric samples.
func (c *Counter) Collect() []Sample { return c.collect() }

// WithLabels returns the counter for the given label values.
func (c *Counter) WithLabels(values ...string) (*CounterVec, error) {
	sv, err := c.lookup("counter", values)
	if err != nil {
		return nil, err
	}
	return &CounterVec{sv: sv}, nil
}

// Inc increments an unlabeled counter by 1.
func (c *Counter) Inc() error {
	return c.Add(1)
}

// Add adds delta to an unlabeled counter.
func (c *Counter) Add(delta float64) error {
	vec, err := c.WithLabels()
	if err != nil {
		return err
	}
	return vec.Add(delta)
}

// Value returns the current value for the given label values, or 0 when the
// combination has never been recorded.
func (c *Counter) Value(values ...string) float64 {
	key := strings.Join(values, "\x00")
	c.mu.RLock()
	defer c.mu.RUnlock()
	if sv, ok := c.values[key]; ok {
		return sv.value.Load()
	}
	return 0
}

// CounterVec is a counter bound to one label combination.
type CounterVec struct {
	sv *seriesValue
}

// Inc increments the counter by 1.
func (v *CounterVec) Inc() error {
	return v.Add(1)
}

// Add adds delta to the counter.
func (v *CounterVec) Add(delta float64) error {
	if delta < 0 {
		return ErrNegativeCounterValue
	}
	v.sv.value.Add(delta)
	return nil
}

// Gauge is a metric that can go up and down.
type Gauge struct {
	series
}

// Name returns the metric name.
func (g *Gauge) Name() string { return g.name }

// Help returns the help text.
func (g *Gauge) Help() string { return g.help }

// Type returns the metric type.
func (g *Gauge) Type() MetricType { return MetricTypeGauge }

// Collect returns all metric samples.
func (g *Gauge) Collect() []Sample { return g.collect() }

// WithLabels returns the gauge for the given label values.
func (g *Gauge) WithLabels(values ...string) (*GaugeVec, error) {
	sv, err := g.lookup("gauge", values)
	if err != nil {
		return nil, err
	}
	return &GaugeVec{sv: sv}, nil
}

// Set sets an unlabeled gauge.
func (g *Gauge) Set(value float64) error {
	vec, err := g.WithLabels()
	if err != nil {
		return err
	}
	vec.Set(value)
	return nil
}

// Add adds delta to an unlabeled gauge.
func (g *Gauge) Add(delta float64) error {
	vec, err := g.WithLabels()
	if err != nil {
		return err
	}
	vec.Add(delta)
	return nil
}

// GaugeVec is a gauge bound to one label combination.
type GaugeVec struct {
	sv *seriesValue
}

// Set sets the gauge to value.
func (v *GaugeVec) Set(value float64) { v.sv.value.Store(value) }

// Add adds delta to the gauge.
func (v *GaugeVec) Add(delta float64) { v.sv.value.Add(delta) }

// Registry holds all registered metrics.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	names   map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewCounter creates and registers a counter.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := &Counter{series: newSeries(name, help, labels)}
	r.register(c)
	return c
}

// NewGauge creates and registers a gauge.
func (r *Registry) NewGauge(name, help string, labels ...string) *Gauge {
	g := &Gauge{series: newSeries(name, help, labels)}
	r.register(g)
	return g
}

// register panics on duplicate names since they produce invalid exposition output.
func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.names[m.Name()]; exists {
		panic(fmt.Sprintf("%s: %s", ErrDuplicateMetric, m.Name()))
	}
	r.names[m.Name()] = struct{}{}
	r.metrics = append(r.metrics, m)
}

// WriteTo writes every metric with at least one sample in Prometheus text format.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	r.mu.RLock()
	metrics := make([]Metric, len(r.metrics))
	copy(metrics, r.metrics)
	r.mu.RUnlock()

	cw := &countingWriter{w: w}
	for _, m := range metrics {
		writeMetric(cw, m)
		if cw.err != nil {
			break
		}
	}
	return cw.n, cw.err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

func writeMetric(w io.Writer, m Metric) {
	samples := m.Collect()
	if len(samples) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "# HELP %s %s\n", m.Name(), escapeHelp(m.Help()))
	_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", m.Name(), m.Type())
	for _, s := range samples {
		if len(s.Labels) == 0 {
			_, _ = fmt.Fprintf(w, "%s %s\n", s.Name, formatFloat(s.Value))
		} else {
			_, _ = fmt.Fprintf(w, "%s{%s} %s\n", s.Name, formatLabels(s.Labels), formatFloat(s.Value))
		}
	}
}

// formatLabels formats labels as key="value" pairs sorted by key.
func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + `="` + escapeLabelValue(labels[k]) + `"`
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	s := fmt.Sprintf("%g", v)
	if v == math.Trunc(v) && !strings.ContainsAny(s, ".e") {
		return fmt.Sprintf("%.0f", v)
	}
	return s
}

func escapeHelp(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func escapeLabelValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}
