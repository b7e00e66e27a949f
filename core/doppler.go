package core

import (
	"time"

	"github.com/signalsfoundry/doppler-validator/model"
)

// SpeedOfLightMS is exact by definition and not configurable.
const SpeedOfLightMS = 299792458.0

// DefaultFiniteDifferenceStep is the lookahead used to difference two
// range evaluations. Large enough that propagation noise does not
// dominate, small enough that the Doppler value stays locally
// representative near closest approach. Test tolerances are calibrated
// against this value.
const DefaultFiniteDifferenceStep = 10 * time.Second

// RangeEstimator derives slant range and its finite-difference time
// derivative for one satellite/observer pairing.
type RangeEstimator struct {
	provider StateProvider
	observer Vec3 // ECEF km
	step     time.Duration
}

// NewRangeEstimator builds an estimator over the given provider and
// observer position. A non-positive step falls back to the default.
func NewRangeEstimator(provider StateProvider, obs model.ObserverPosition, step time.Duration) *RangeEstimator {
	if step <= 0 {
		step = DefaultFiniteDifferenceStep
	}
	return &RangeEstimator{
		provider: provider,
		observer: GeodeticToECEF(obs),
		step:     step,
	}
}

// Step returns the configured finite-difference interval.
func (e *RangeEstimator) Step() time.Duration { return e.step }

// RangeKm returns the slant range at t in kilometres.
func (e *RangeEstimator) RangeKm(t time.Time) (float64, error) {
	pos, err := e.provider.PositionAt(t)
	if err != nil {
		return 0, err
	}
	return SlantRangeKm(e.observer, pos), nil
}

// Observation bundles the per-instant geometry the comparator records:
// the slant range and elevation at t, and the finite-difference
// range-rate over [t, t+step].
type Observation struct {
	RangeKm      float64
	RangeRateMS  float64
	ElevationDeg float64
}

// ObservationAt resolves the satellite state at t and t+step and derives
// range, range-rate, and elevation from the two positions.
func (e *RangeEstimator) ObservationAt(t time.Time) (Observation, error) {
	pos1, err := e.provider.PositionAt(t)
	if err != nil {
		return Observation{}, err
	}
	pos2, err := e.provider.PositionAt(t.Add(e.step))
	if err != nil {
		return Observation{}, err
	}

	r1 := SlantRangeKm(e.observer, pos1)
	r2 := SlantRangeKm(e.observer, pos2)

	return Observation{
		RangeKm:      r1,
		RangeRateMS:  (r2 - r1) * 1000.0 / e.step.Seconds(),
		ElevationDeg: ElevationDegrees(e.observer, pos1),
	}, nil
}

// RangeRateMS approximates the range-rate at t in metres per second with
// a forward finite difference over the configured step. Positive means
// the satellite is receding. This deliberately avoids velocity vectors
// and frame transforms: propagators expose position, so two nearby range
// evaluations are enough.
func (e *RangeEstimator) RangeRateMS(t time.Time) (float64, error) {
	obs, err := e.ObservationAt(t)
	if err != nil {
		return 0, err
	}
	return obs.RangeRateMS, nil
}

// DopplerShiftHz maps a range-rate onto the predicted carrier shift using
// the classical non-relativistic approximation. Receding (positive
// range-rate) yields a negative, downward shift. Relativistic terms are
// negligible at orbital speeds.
func DopplerShiftHz(rangeRateMS, carrierHz float64) float64 {
	return -carrierHz * rangeRateMS / SpeedOfLightMS
}

// PredictedDopplerHz is the full reference computation for one instant:
// range-rate via finite difference, then the Doppler conversion.
func (e *RangeEstimator) PredictedDopplerHz(t time.Time, carrierHz float64) (float64, error) {
	rate, err := e.RangeRateMS(t)
	if err != nil {
		return 0, err
	}
	return DopplerShiftHz(rate, carrierHz), nil
}
