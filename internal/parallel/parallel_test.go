package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_EveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 7, MinPerWorker: 1}

	n := 100
	counts := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	}, cfg)

	for i, c := range counts {
		if c != 1 {
			t.Errorf("Index %d ran %d times", i, c)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestFor_FewerItemsThanWorkers(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 16, MinPerWorker: 1}

	counts := make([]int32, 3)
	For(3, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	}, cfg)

	for i, c := range counts {
		if c != 1 {
			t.Errorf("Index %d ran %d times", i, c)
		}
	}
}

func TestFor_MinPerWorker(t *testing.T) {
	// Too little work per worker falls back to one worker.
	cfg := Config{Enabled: true, NumWorkers: 8, MinPerWorker: 1000}

	var counter int64
	For(10, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 10 {
		t.Errorf("Expected 10, got %d", counter)
	}
}

func TestFor_Empty(t *testing.T) {
	called := false
	For(0, func(_ int) { called = true }, DefaultConfig())
	if called {
		t.Error("Body ran for an empty range")
	}
}

func TestDo(t *testing.T) {
	ran := make([]int32, 4)
	fs := make([]func(), 4)
	for i := range fs {
		fs[i] = func() { atomic.AddInt32(&ran[i], 1) }
	}

	Do(DefaultConfig(), fs...)
	for i, c := range ran {
		if c != 1 {
			t.Errorf("Task %d ran %d times", i, c)
		}
	}
}

func TestDo_Sequential(t *testing.T) {
	order := []int{}
	Do(Config{Enabled: false},
		func() { order = append(order, 0) },
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	)

	for i, v := range order {
		if i != v {
			t.Errorf("Sequential Do ran out of order: %v", order)
		}
	}
	if len(order) != 3 {
		t.Errorf("Expected 3 tasks, got %d", len(order))
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfgSeq)
		}
	})
}
