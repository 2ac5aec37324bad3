package cli

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/getmockd/tempoid/internal/entropy"
	"github.com/getmockd/tempoid/pkg/cli/internal/output"
	"github.com/getmockd/tempoid/pkg/metrics"
	"github.com/getmockd/tempoid/pkg/tempoid"
	"github.com/spf13/cobra"
)

var (
	benchShape     shapeFlags
	benchWorkers   int
	benchPerWorker int
	benchMetrics   bool
)

// benchResult summarizes a bench run.
type benchResult struct {
	Workers    int           `json:"workers"`
	Generated  int           `json:"generated"`
	Duplicates int           `json:"duplicates"`
	Duration   time.Duration `json:"durationNs"`
	PerSecond  float64       `json:"perSecond"`
	Pool       entropy.Stats `json:"pool"`
}

// runBench generates perWorker identifiers on each of workers goroutines
// sharing one generator, then counts duplicates across all of them.
func runBench(gen *tempoid.Generator, c tempoid.Config, workers, perWorker int) (benchResult, error) {
	batches := make([][]tempoid.ID, workers)
	errs := make([]error, workers)

	start := time.Now()
	var wg sync.WaitGroup
	for w := range workers {
		wg.Go(func() {
			ids := make([]tempoid.ID, 0, perWorker)
			for range perWorker {
				id, err := gen.GenerateCustom(c)
				if err != nil {
					errs[w] = err
					return
				}
				ids = append(ids, id)
			}
			batches[w] = ids
		})
	}
	wg.Wait()
	elapsed := time.Since(start)

	if err := errors.Join(errs...); err != nil {
		return benchResult{}, err
	}

	res := benchResult{Workers: workers, Duration: elapsed}
	seen := make(map[tempoid.ID]struct{}, workers*perWorker)
	for _, batch := range batches {
		for _, id := range batch {
			if _, dup := seen[id]; dup {
				res.Duplicates++
			}
			seen[id] = struct{}{}
			res.Generated++
		}
	}
	if elapsed > 0 {
		res.PerSecond = float64(res.Generated) / elapsed.Seconds()
	}
	return res, nil
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Generate identifiers concurrently and report throughput",
	Long: `Bench generates identifiers from several goroutines sharing one entropy pool,
reports throughput and pool statistics, and fails if any identifier repeats.

With --metrics the counters collected during the run are printed in the
Prometheus text format.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		benchShape.apply(cmd, cfg)
		genCfg, err := cfg.GenerationConfig()
		if err != nil {
			return err
		}
		if benchWorkers < 1 || benchPerWorker < 1 {
			return fmt.Errorf("--workers and --per-worker must be at least 1")
		}

		registry := metrics.Init()
		pool := entropy.NewPool(entropy.WithLogger(logger))
		gen := tempoid.New(tempoid.WithByteSource(pool), tempoid.WithLogger(logger))

		logger.Info("bench starting", "workers", benchWorkers, "perWorker", benchPerWorker)
		res, err := runBench(gen, genCfg, benchWorkers, benchPerWorker)
		if err != nil {
			return err
		}
		res.Pool = pool.Stats()

		out := cmd.OutOrStdout()
		if cfg.JSON {
			if err := output.JSON(out, res); err != nil {
				return err
			}
		} else {
			tw := output.Table(out)
			fmt.Fprintf(tw, "workers\t%d\n", res.Workers)
			fmt.Fprintf(tw, "generated\t%d\n", res.Generated)
			fmt.Fprintf(tw, "duplicates\t%d\n", res.Duplicates)
			fmt.Fprintf(tw, "duration\t%s\n", res.Duration)
			fmt.Fprintf(tw, "ids/sec\t%.0f\n", res.PerSecond)
			fmt.Fprintf(tw, "pool allocations\t%d\n", res.Pool.Allocations)
			fmt.Fprintf(tw, "pool refills\t%d\n", res.Pool.Refills)
			fmt.Fprintf(tw, "pool bytes served\t%d\n", res.Pool.BytesServed)
			if err := tw.Flush(); err != nil {
				return err
			}
		}

		if benchMetrics {
			fmt.Fprintln(out)
			if _, err := registry.WriteTo(out); err != nil {
				return err
			}
		}

		if res.Duplicates > 0 {
			return fmt.Errorf("%w: %d", ErrDuplicates, res.Duplicates)
		}
		return nil
	},
}

func init() {
	benchShape.register(benchCmd)
	benchCmd.Flags().IntVarP(&benchWorkers, "workers", "w", runtime.GOMAXPROCS(0), "Number of concurrent goroutines")
	benchCmd.Flags().IntVar(&benchPerWorker, "per-worker", 10000, "Identifiers generated by each goroutine")
	benchCmd.Flags().BoolVar(&benchMetrics, "metrics", false, "Print collected metrics in Prometheus text format")
	rootCmd.AddCommand(benchCmd)
}
