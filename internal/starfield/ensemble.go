package starfield

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Ensemble runs several independently seeded fields with the same setup in
// parallel. Each run gets seed SeedStart+i and fresh metrics from
// NewMetrics.
type Ensemble struct {
	Population int
	Bounds     Bounds
	Rates      Rates
	Runs       int
	SeedStart  int64
	NewMetrics func() []Metric
}

func (e Ensemble) Run(ctx context.Context, frames int) ([]*Result, error) {
	if e.Runs < 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidRuns, e.Runs)
	}
	results := make([]*Result, e.Runs)
	errs := make([]error, e.Runs)

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			f := New(e.Population, e.Bounds,
				WithSource(rand.New(rand.NewSource(e.SeedStart+int64(idx)))),
				WithRates(e.Rates),
			)
			if e.NewMetrics != nil {
				for _, m := range e.NewMetrics() {
					f.AddMetric(m)
				}
			}
			results[idx], errs[idx] = f.Run(ctx, frames, nil)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
