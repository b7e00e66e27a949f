package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/doppler-validator/core"
)

// ValidationCollector bundles Prometheus metrics for validation runs and
// provides a ready-to-use /metrics handler.
type ValidationCollector struct {
	gatherer prometheus.Gatherer

	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram

	SamplesCompared prometheus.Counter

	MeanAbsDiffHz prometheus.Gauge
	MaxAbsDiffHz  prometheus.Gauge
}

// NewValidationCollector registers validation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewValidationCollector(reg prometheus.Registerer) (*ValidationCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "validation_runs_total",
		Help: "Total number of completed validation runs, labeled by verdict.",
	}, []string{"verdict"})
	runs, err := registerCounterVec(reg, runs, "validation_runs_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "validation_run_duration_seconds",
		Help:    "End-to-end validation run latency in seconds.",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})
	duration, err = registerHistogram(reg, duration, "validation_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	samples := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "validation_samples_compared_total",
		Help: "Total number of candidate samples compared across all runs.",
	})
	samples, err = registerCounter(reg, samples, "validation_samples_compared_total")
	if err != nil {
		return nil, err
	}

	meanDiff, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "validation_mean_abs_diff_hz",
		Help: "Mean absolute Doppler difference of the most recent run, in Hz.",
	}), "validation_mean_abs_diff_hz")
	if err != nil {
		return nil, err
	}
	maxDiff, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "validation_max_abs_diff_hz",
		Help: "Maximum absolute Doppler difference of the most recent run, in Hz.",
	}), "validation_max_abs_diff_hz")
	if err != nil {
		return nil, err
	}

	return &ValidationCollector{
		gatherer:        gatherer,
		RunsTotal:       runs,
		RunDuration:     duration,
		SamplesCompared: samples,
		MeanAbsDiffHz:   meanDiff,
		MaxAbsDiffHz:    maxDiff,
	}, nil
}

// ObserveRun records a completed validation run.
func (c *ValidationCollector) ObserveRun(result *core.RunResult, elapsed time.Duration) {
	if c == nil || result == nil {
		return
	}
	if c.RunsTotal != nil {
		c.RunsTotal.WithLabelValues(result.Verdict.String()).Inc()
	}
	if c.RunDuration != nil {
		c.RunDuration.Observe(elapsed.Seconds())
	}
	if c.SamplesCompared != nil {
		c.SamplesCompared.Add(float64(result.Stats.Samples))
	}
	if c.MeanAbsDiffHz != nil {
		c.MeanAbsDiffHz.Set(result.Stats.MeanAbsDiffHz)
	}
	if c.MaxAbsDiffHz != nil {
		c.MaxAbsDiffHz.Set(result.Stats.MaxAbsDiffHz)
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ValidationCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
