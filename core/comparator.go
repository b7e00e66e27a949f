package core

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/signalsfoundry/doppler-validator/model"
)

// PassProfile summarises the observation window's geometry: the highest
// elevation reached and the closest approach. Informational output for
// the reporter; it plays no part in the verdict.
type PassProfile struct {
	MaxElevationDeg float64
	MaxElevationAt  time.Time
	MinRangeKm      float64
	ClosestApproach time.Time
}

// RunResult is everything a validation run emits: the ordered comparison
// records, their aggregate statistics, the verdict, and the pass
// profile. Rendering and persistence are left to external reporters.
type RunResult struct {
	Records []model.ComparisonRecord
	Stats   model.AggregateStatistics
	Verdict model.Verdict
	Profile PassProfile
}

// Comparator aligns a candidate Doppler series against the reference
// computation and judges the aggregate error. Carrier frequency and
// observer position are fixed for the comparator's lifetime.
type Comparator struct {
	// Thresholds may be overridden before Run; zero value falls back to
	// DefaultThresholds.
	Thresholds Thresholds

	// Workers bounds concurrent reference computations. Values below 2
	// keep the run single-threaded. Output ordering is deterministic
	// regardless.
	Workers int

	estimator *RangeEstimator
	carrierHz float64
}

// NewComparator builds a comparator over the given estimator at a fixed
// carrier frequency in Hz.
func NewComparator(estimator *RangeEstimator, carrierHz float64) *Comparator {
	return &Comparator{
		Thresholds: DefaultThresholds,
		estimator:  estimator,
		carrierHz:  carrierHz,
	}
}

type sampleResult struct {
	obs Observation
	err error
}

// Run pairs every candidate sample with a freshly computed reference
// value and aggregates the absolute differences. Timestamp matching is
// exact; a sample the provider cannot resolve fails the whole run
// rather than being skipped, because a partial statistic is worse than
// a hard failure. An empty series is rejected before any statistics
// exist.
func (c *Comparator) Run(ctx context.Context, series model.CandidateSeries) (*RunResult, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("align candidate series: %w", model.ErrEmptySeries)
	}

	sorted := series.SortedByTime()
	results := c.observeAll(ctx, sorted)

	// Surface the earliest failure so diagnosis points at one timestamp.
	for i, res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, res.err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]model.ComparisonRecord, len(sorted))
	profile := PassProfile{MinRangeKm: math.Inf(1), MaxElevationDeg: math.Inf(-1)}
	for i, sample := range sorted {
		obs := results[i].obs
		ref := DopplerShiftHz(obs.RangeRateMS, c.carrierHz)
		records[i] = model.ComparisonRecord{
			Time:               AsUTC(sample.Time),
			ReferenceDopplerHz: ref,
			CandidateDopplerHz: sample.DopplerHz,
			AbsDiffHz:          math.Abs(sample.DopplerHz - ref),
		}

		if obs.ElevationDeg > profile.MaxElevationDeg {
			profile.MaxElevationDeg = obs.ElevationDeg
			profile.MaxElevationAt = records[i].Time
		}
		if obs.RangeKm < profile.MinRangeKm {
			profile.MinRangeKm = obs.RangeKm
			profile.ClosestApproach = records[i].Time
		}
	}

	stats := aggregate(records)
	th := c.Thresholds
	if th == (Thresholds{}) {
		th = DefaultThresholds
	}

	return &RunResult{
		Records: records,
		Stats:   stats,
		Verdict: th.Evaluate(stats.MeanAbsDiffHz),
		Profile: profile,
	}, nil
}

// observeAll computes the per-sample reference geometry, fanning out to
// a bounded worker pool when configured. Each worker writes only its own
// indices, so results recombine in input order without coordination.
func (c *Comparator) observeAll(ctx context.Context, sorted model.CandidateSeries) []sampleResult {
	results := make([]sampleResult, len(sorted))

	workers := c.Workers
	if workers > len(sorted) {
		workers = len(sorted)
	}
	if workers < 2 {
		for i, sample := range sorted {
			if ctx.Err() != nil {
				break
			}
			obs, err := c.estimator.ObservationAt(sample.Time)
			results[i] = sampleResult{obs: obs, err: err}
		}
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				obs, err := c.estimator.ObservationAt(sorted[i].Time)
				results[i] = sampleResult{obs: obs, err: err}
			}
		}()
	}

	for i := range sorted {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

// aggregate computes mean, max, and sample standard deviation of the
// absolute differences. Order-independent by construction.
func aggregate(records []model.ComparisonRecord) model.AggregateStatistics {
	n := len(records)

	var sum, max float64
	for _, rec := range records {
		sum += rec.AbsDiffHz
		if rec.AbsDiffHz > max {
			max = rec.AbsDiffHz
		}
	}
	mean := sum / float64(n)

	var stddev float64
	if n > 1 {
		var sq float64
		for _, rec := range records {
			d := rec.AbsDiffHz - mean
			sq += d * d
		}
		stddev = math.Sqrt(sq / float64(n-1))
	}

	return model.AggregateStatistics{
		MeanAbsDiffHz:   mean,
		MaxAbsDiffHz:    max,
		StdDevAbsDiffHz: stddev,
		Samples:         n,
	}
}
