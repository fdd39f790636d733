//go:build test

package suggest

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/bastiangx/sitesuggest/pkg/catalog"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// keystrokes replays what a user types, one growing query per key.
var keystrokes = [][]string{
	{"b", "bl", "blo", "bloo", "blood"},
	{"c", "co", "cov", "covi", "covid"},
	{"t", "te", "tes", "test", "tests"},
	{"p", "pa", "pan", "pane", "panel"},
	{"i", "in", "ins", "insu", "insur", "insura", "insuran", "insuranc", "insurance"},
	{"v", "vi", "vit", "vita", "vitam", "vitami", "vitamin"},
	{"x", "xy", "xyz", "xyz1", "xyz12", "xyz123"},
}

func TestMemoryBasic(t *testing.T) {
	for _, iterations := range []int{100, 500, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			runBasicMemoryTest(t, iterations)
		})
	}
}

func TestMemoryConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 1000},
		{workers: 4, iterationsPerWorker: 250},
		{workers: 8, iterationsPerWorker: 125},
	}

	for _, cfg := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", cfg.workers, cfg.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, cfg.workers, cfg.iterationsPerWorker)
		})
	}
}

func runBasicMemoryTest(t *testing.T, iterations int) {
	ix := NewIndex(catalog.Default(), WithCacheSize(16))

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	ops := 0
	for i := 0; i < iterations; i++ {
		for _, pattern := range keystrokes {
			for _, q := range pattern {
				_ = ix.Search(q)
				ops++
			}
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.HeapAlloc) - int64(baseline.HeapAlloc)
	goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
	memPerOp := float64(memDelta) / float64(ops)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, ops, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 100 {
		t.Errorf("retained memory grows with queries: %.2f bytes per op", memPerOp)
	}
	if goroutineDelta > 0 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
	if n := ix.cache.Len(); n > 16 {
		t.Errorf("cache exceeded its bound: %d entries", n)
	}
}

func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	c := catalog.Default()
	ix := NewIndex(c, WithCacheSize(8))
	reference := NewIndex(c, WithCacheSize(0))

	want := make(map[string][]string)
	for _, pattern := range keystrokes {
		for _, q := range pattern {
			want[q] = names(reference.Search(q))
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		mismatch []string
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := 0; iter < iterationsPerWorker; iter++ {
				for _, pattern := range keystrokes {
					for _, q := range pattern {
						got := names(ix.Search(q))
						if fmt.Sprint(got) != fmt.Sprint(want[q]) {
							mu.Lock()
							mismatch = append(mismatch, q)
							mu.Unlock()
						}
					}
				}
			}
		}()
	}
	wg.Wait()

	stats := ix.Stats()
	t.Logf("workers=%d hits=%d misses=%d cached=%d",
		workers, stats["cacheHits"], stats["cacheMisses"], stats["cachedQueries"])

	if len(mismatch) > 0 {
		t.Errorf("concurrent results differ from sequential for %d queries, first %q", len(mismatch), mismatch[0])
	}
	if stats["cachedQueries"] > 8 {
		t.Errorf("cache exceeded its bound: %d entries", stats["cachedQueries"])
	}
}
