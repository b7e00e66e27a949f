package core

import (
	"fmt"

	"github.com/signalsfoundry/doppler-validator/model"
)

// Thresholds are the verdict boundaries over the mean absolute Doppler
// difference, in Hz. The defaults are calibration constants, not
// physics, so a run may override them; the boundaries stay strict
// (inclusive-below) and frequency-independent either way.
type Thresholds struct {
	ExcellentHz  float64
	GoodHz       float64
	AcceptableHz float64
}

// DefaultThresholds match the calibration of the finite-difference step:
// < 2 Hz excellent, < 10 Hz good, < 50 Hz acceptable, else review.
var DefaultThresholds = Thresholds{
	ExcellentHz:  2,
	GoodHz:       10,
	AcceptableHz: 50,
}

// Validate checks the thresholds form a strictly increasing ladder.
func (th Thresholds) Validate() error {
	if th.ExcellentHz <= 0 || th.GoodHz <= th.ExcellentHz || th.AcceptableHz <= th.GoodHz {
		return fmt.Errorf("thresholds must be strictly increasing and positive, got %.3g/%.3g/%.3g",
			th.ExcellentHz, th.GoodHz, th.AcceptableHz)
	}
	return nil
}

// Evaluate classifies a mean absolute difference. First match wins; the
// comparison is strictly less-than, so a mean sitting exactly on a
// boundary falls into the next tier. Pure function of the aggregate
// mean; per-sample records are never inspected.
func (th Thresholds) Evaluate(meanAbsDiffHz float64) model.Verdict {
	switch {
	case meanAbsDiffHz < th.ExcellentHz:
		return model.VerdictExcellent
	case meanAbsDiffHz < th.GoodHz:
		return model.VerdictGood
	case meanAbsDiffHz < th.AcceptableHz:
		return model.VerdictAcceptable
	default:
		return model.VerdictReview
	}
}
