package analysis

import (
	"runtime"
	"sync"
	"time"
)

// Year analyzes every day of a calendar year. Each Analyze call is
// independent and side-effect-free on its inputs, so the batch is
// parallelized by analysis instance: every worker owns its own Engine
// and shadow calculator, because the cache is not designed for
// concurrent mutation. workers ≤ 0 means one per CPU.
func Year(p Params, year int, workers int) []Results {
	var dates []time.Time
	for d := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(dates) {
		workers = len(dates)
	}

	results := make([]Results, len(dates))
	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			eng := New(p)
			for i := range idx {
				results[i] = eng.Analyze(dates[i])
			}
		}()
	}
	for i := range dates {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return results
}
