// Package parallel provides parallel execution utilities for backend kernels.
package parallel

import (
	"sync"

	"github.com/born-ml/blockstore/internal/envconfig"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns the configuration selected by the environment
// (BLOCKSTORE_NO_PARALLEL, BLOCKSTORE_NUM_THREADS, BLOCKSTORE_PARALLEL_MIN_CHUNK).
func DefaultConfig() Config {
	n := int(envconfig.NumThreads())
	return Config{
		Enabled:      n > 1 && !envconfig.NoParallel(),
		NumWorkers:   max(n, 1),
		MinChunkSize: max(int(envconfig.ParallelMinChunk()), 1),
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
