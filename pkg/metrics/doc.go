// Package metrics provides Prometheus-compatible counters and gauges for the
// identifier generator.
//
// The package writes the Prometheus text exposition format
// (text/plain; version=0.0.4) using only the standard library. All metrics are
// safe for concurrent use.
//
// # Default Metrics
//
// Init registers the metrics emitted by the entropy pool and the generator:
//
//   - tempoid_ids_generated_total: Counter of identifiers produced (labels: alphabet_size)
//   - tempoid_random_rejections_total: Counter of random bytes discarded by rejection sampling
//   - tempoid_pool_refills_total: Counter of entropy source reads (labels: kind = alloc, refill)
//   - tempoid_pool_bytes_served_total: Counter of random bytes handed out by the pool
//   - tempoid_pool_buffer_bytes: Gauge of the pool's current buffer size
//   - tempoid_errors_total: Counter of generation failures (labels: type)
//
// Until Init is called the package-level metrics are nil and instrumented code
// skips recording.
//
// # Usage
//
//	registry := metrics.Init()
//	id, _ := tempoid.Generate()
//	_, _ = registry.WriteTo(os.Stdout)
package metrics
