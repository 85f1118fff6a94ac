package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForVisitsEachIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	seen := make([]int32, 257)
	For(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, v := range seen {
		if v != 1 {
			t.Errorf("index %d visited %d times", i, v)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	order := make([]int, 0, 100)
	For(100, func(i int) {
		order = append(order, i)
	}, cfg)

	for i, v := range order {
		if v != i {
			t.Fatalf("sequential For visited %d at position %d", v, i)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("BLOCKSTORE_NUM_THREADS", "4")
	t.Setenv("BLOCKSTORE_PARALLEL_MIN_CHUNK", "16")
	t.Setenv("BLOCKSTORE_NO_PARALLEL", "")

	cfg := DefaultConfig()
	if !cfg.Enabled || cfg.NumWorkers != 4 || cfg.MinChunkSize != 16 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}

	t.Setenv("BLOCKSTORE_NO_PARALLEL", "true")
	if DefaultConfig().Enabled {
		t.Error("BLOCKSTORE_NO_PARALLEL should disable parallel execution")
	}

	t.Setenv("BLOCKSTORE_NO_PARALLEL", "")
	t.Setenv("BLOCKSTORE_NUM_THREADS", "1")
	if DefaultConfig().Enabled {
		t.Error("a single thread should disable parallel execution")
	}
}
