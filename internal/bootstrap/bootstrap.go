// Package bootstrap estimates the sampling uncertainty of skill scores by
// resampling with replacement, and ranks tracker runs against a reference.
package bootstrap

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientData is returned when there are no observations to resample.
	ErrInsufficientData = errors.New("bootstrap needs at least one observation")
	// ErrInvalidAlpha is returned for alpha outside (0, 1).
	ErrInvalidAlpha = errors.New("alpha must be in (0, 1)")
	// ErrInvalidReps is returned for a non-positive repetition count.
	ErrInvalidReps = errors.New("repetitions must be positive")
)

// DefaultSeed seeds resampling when the caller does not choose one.
const DefaultSeed uint64 = 1

// Result is a bootstrap mean with its two-sided confidence interval.
type Result struct {
	Lower float64 `json:"lower"`
	Mean  float64 `json:"mean"`
	Upper float64 `json:"upper"`
}

// Width returns Upper-Lower.
func (r Result) Width() float64 { return r.Upper - r.Lower }

// Resampler draws bootstrap resamples. Draws for repetition i always come
// from a generator seeded with (Seed, i), so results do not depend on
// Workers or scheduling.
type Resampler struct {
	Seed    uint64
	Workers int // <= 0 uses GOMAXPROCS
}

// NewResampler returns a Resampler with the given seed and worker limit.
func NewResampler(seed uint64, workers int) *Resampler {
	return &Resampler{Seed: seed, Workers: workers}
}

// Bootstrap resamples obs with the default seed.
func Bootstrap(obs []float64, reps int, alpha float64) (Result, error) {
	return NewResampler(DefaultSeed, 0).Bootstrap(obs, reps, alpha)
}

// Bootstrap draws reps resamples of len(obs) values with replacement and
// returns the mean of the resample means together with the alpha/2 and
// 1-alpha/2 empirical percentiles of their distribution.
func (r *Resampler) Bootstrap(obs []float64, reps int, alpha float64) (Result, error) {
	if !(alpha > 0 && alpha < 1) {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidAlpha, alpha)
	}
	means, err := r.Means(obs, reps)
	if err != nil {
		return Result{}, err
	}

	sort.Float64s(means)
	return Result{
		Lower: stat.Quantile(alpha/2, stat.Empirical, means, nil),
		Mean:  stat.Mean(means, nil),
		Upper: stat.Quantile(1-alpha/2, stat.Empirical, means, nil),
	}, nil
}

// Means returns the mean of each of reps resamples of obs, in repetition
// order.
func (r *Resampler) Means(obs []float64, reps int) ([]float64, error) {
	if len(obs) == 0 {
		return nil, ErrInsufficientData
	}
	if reps <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidReps, reps)
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, reps)

	means := make([]float64, reps)
	chunk := (reps + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < reps; start += chunk {
		end := min(start+chunk, reps)
		g.Go(func() error {
			sample := make([]float64, len(obs))
			for rep := start; rep < end; rep++ {
				rng := rand.New(rand.NewPCG(r.Seed, uint64(rep)))
				for i := range sample {
					sample[i] = obs[rng.IntN(len(obs))]
				}
				means[rep] = stat.Mean(sample, nil)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return means, nil
}
