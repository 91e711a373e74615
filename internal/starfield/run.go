package starfield

import (
	"context"
	"fmt"
)

// Result holds the per-frame series of a headless run.
type Result struct {
	Frames     int
	Population []float64
	Resets     []float64
	MeanSpeed  []float64
	MaxSize    []float64
	Metrics    map[string]float64
}

// Run steps the field for the given number of frames without a frame clock.
// Metrics are reset before the first frame. On cancellation the partial
// result is returned with the context error.
func (f *Field) Run(ctx context.Context, frames int, r Renderer) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidFrames, frames)
	}

	result := &Result{
		Population: make([]float64, 0, frames),
		Resets:     make([]float64, 0, frames),
		MeanSpeed:  make([]float64, 0, frames),
		MaxSize:    make([]float64, 0, frames),
		Metrics:    make(map[string]float64),
	}

	for _, m := range f.metrics {
		m.Reset()
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			result.collect(f.metrics)
			return result, ctx.Err()
		default:
		}

		if r != nil {
			r.Clear()
		}
		st := f.Step(r)

		result.Frames++
		result.Population = append(result.Population, float64(st.Population))
		result.Resets = append(result.Resets, float64(st.Resets))
		result.MeanSpeed = append(result.MeanSpeed, st.MeanSpeed)
		result.MaxSize = append(result.MaxSize, st.MaxSize)
	}

	result.collect(f.metrics)
	return result, nil
}

func (r *Result) collect(metrics []Metric) {
	for _, m := range metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}
