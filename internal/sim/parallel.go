package sim

import (
	"context"
	"sync"
)

// Ensemble repeats a run over consecutive seeds in parallel. Components
// share nothing, so each run gets its own loop, component and surface.
type Ensemble struct {
	base      *Simulator
	numRuns   int
	seedStart int64
}

func NewEnsemble(s *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			sim := New(e.base.newComponent, e.base.newSurface)
			results[idx], errs[idx] = sim.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Spread summarizes one metric across an ensemble.
type Spread struct {
	Name           string
	Min, Mean, Max float64
}

func Summarize(results []*Result) []Spread {
	if len(results) == 0 {
		return nil
	}
	var out []Spread
	for _, sr := range results[0].Series {
		name := sr.Metric.Name()
		sp := Spread{Name: name}
		for i, r := range results {
			v := r.Metrics[name]
			if i == 0 || v < sp.Min {
				sp.Min = v
			}
			if i == 0 || v > sp.Max {
				sp.Max = v
			}
			sp.Mean += v
		}
		sp.Mean /= float64(len(results))
		out = append(out, sp)
	}
	return out
}
