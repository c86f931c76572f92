package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var ErrTaskPanic = errors.New("task panicked")

// ForEach runs task(i) for every i in [0, n) on a fresh pool of numWorkers.
// Tasks run in no particular order. A panicking task is recovered, the tasks
// not yet started are skipped, and the first failure is returned.
func ForEach(numWorkers, n int, task func(i int)) error {
	pool := Start(numWorkers)

	var failure atomic.Pointer[error]
	for i := range n {
		if failure.Load() != nil {
			break
		}
		pool.Do(func() {
			if failure.Load() != nil {
				return
			}
			defer func() {
				if r := recover(); r != nil {
					err := fmt.Errorf("%w: task %d: %v", ErrTaskPanic, i, r)
					failure.CompareAndSwap(nil, &err)
				}
			}()
			task(i)
		})
	}
	pool.Wait(true)

	if err := failure.Load(); err != nil {
		return *err
	}
	return nil
}
