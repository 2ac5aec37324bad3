package metrics

import "sync"

// Default metrics, populated by Init.
var (
	// IDsGenerated counts identifiers produced.
	// Labels: alphabet_size
	IDsGenerated *Counter

	// RandomRejections counts random bytes discarded because their masked
	// value fell outside the alphabet.
	RandomRejections *Counter

	// PoolRefills counts reads from the entropy source.
	// Labels: kind (alloc, refill)
	PoolRefills *Counter

	// PoolBytesServed counts random bytes handed out by the entropy pool.
	PoolBytesServed *Counter

	// PoolBufferBytes is the current size of the entropy pool buffer.
	PoolBufferBytes *Gauge

	// ErrorsTotal counts generation failures.
	// Labels: type (alphabet, config, entropy)
	ErrorsTotal *Counter

	defaultRegistry *Registry
	initOnce        sync.Once
)

// Init registers the default metrics and returns their registry.
// It is idempotent.
func Init() *Registry {
	initOnce.Do(func() {
		defaultRegistry = NewRegistry()

		IDsGenerated = defaultRegistry.NewCounter(
			"tempoid_ids_generated_total",
			"Total number of identifiers generated",
			"alphabet_size",
		)
		RandomRejections = defaultRegistry.NewCounter(
			"tempoid_random_rejections_total",
			"Random bytes rejected while sampling alphabet indexes",
		)
		PoolRefills = defaultRegistry.NewCounter(
			"tempoid_pool_refills_total",
			"Reads from the secure entropy source",
			"kind",
		)
		PoolBytesServed = defaultRegistry.NewCounter(
			"tempoid_pool_bytes_served_total",
			"Random bytes served from the entropy pool",
		)
		PoolBufferBytes = defaultRegistry.NewGauge(
			"tempoid_pool_buffer_bytes",
			"Current size of the entropy pool buffer in bytes",
		)
		ErrorsTotal = defaultRegistry.NewCounter(
			"tempoid_errors_total",
			"Identifier generation failures by type",
			"type",
		)
	})
	return defaultRegistry
}

// DefaultRegistry returns the registry created by Init, or nil.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Reset clears the default metrics so Init can run again. Intended for tests.
func Reset() {
	initOnce = sync.Once{}
	defaultRegistry = nil
	IDsGenerated = nil
	RandomRejections = nil
	PoolRefills = nil
	PoolBytesServed = nil
	PoolBufferBytes = nil
	ErrorsTotal = nil
}

// CountError records a generation failure of the given type when metrics are enabled.
func CountError(kind string) {
	if ErrorsTotal == nil {
		return
	}
	if vec, err := ErrorsTotal.WithLabels(kind); err == nil {
		_ = vec.Inc()
	}
}
