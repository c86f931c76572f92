package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryTask(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		pool := Start(workers)
		var n atomic.Int64
		for range 1000 {
			pool.Do(func() { n.Add(1) })
		}
		pool.Wait(true)

		if n.Load() != 1000 {
			t.Errorf("%d workers: expected 1000 tasks, got %d", workers, n.Load())
		}
	}
}

func TestPoolCancelIsIdempotent(t *testing.T) {
	pool := Start(2)
	pool.Cancel()
	pool.Cancel()
	pool.Wait(true)
}

func TestForEach(t *testing.T) {
	seen := make([]atomic.Bool, 100)
	if err := ForEach(3, len(seen), func(i int) { seen[i].Store(true) }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := range seen {
		if !seen[i].Load() {
			t.Errorf("Task %d did not run", i)
		}
	}
}

func TestForEachRecoversPanics(t *testing.T) {
	for _, workers := range []int{1, 4} {
		err := ForEach(workers, 50, func(i int) {
			if i == 7 {
				panic("boom")
			}
		})
		if !errors.Is(err, ErrTaskPanic) {
			t.Errorf("%d workers: expected ErrTaskPanic, got %v", workers, err)
		}
	}
}
