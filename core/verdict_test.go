package core

import (
	"testing"

	"github.com/signalsfoundry/doppler-validator/model"
)

func TestThresholds_EvaluateBoundaries(t *testing.T) {
	// The boundary is strictly less-than: a mean sitting exactly on a
	// threshold belongs to the next tier down.
	cases := []struct {
		meanHz float64
		want   model.Verdict
	}{
		{0, model.VerdictExcellent},
		{1.999, model.VerdictExcellent},
		{2.0, model.VerdictGood},
		{9.999, model.VerdictGood},
		{10.0, model.VerdictAcceptable},
		{49.999, model.VerdictAcceptable},
		{50.0, model.VerdictReview},
		{1e6, model.VerdictReview},
	}

	for _, tc := range cases {
		if got := DefaultThresholds.Evaluate(tc.meanHz); got != tc.want {
			t.Errorf("Evaluate(%v) = %s, want %s", tc.meanHz, got, tc.want)
		}
	}
}

func TestThresholds_FrequencyIndependent(t *testing.T) {
	// Same bounds regardless of carrier; the evaluator never sees one.
	if got := DefaultThresholds.Evaluate(1.5); got != model.VerdictExcellent {
		t.Fatalf("Evaluate(1.5) = %s, want EXCELLENT", got)
	}
}

func TestThresholds_Validate(t *testing.T) {
	if err := DefaultThresholds.Validate(); err != nil {
		t.Fatalf("default thresholds should validate, got %v", err)
	}

	bad := []Thresholds{
		{ExcellentHz: 0, GoodHz: 10, AcceptableHz: 50},
		{ExcellentHz: 10, GoodHz: 2, AcceptableHz: 50},
		{ExcellentHz: 2, GoodHz: 50, AcceptableHz: 10},
		{ExcellentHz: 2, GoodHz: 2, AcceptableHz: 50},
	}
	for _, th := range bad {
		if err := th.Validate(); err == nil {
			t.Errorf("expected validation failure for %+v", th)
		}
	}
}

func TestVerdictString(t *testing.T) {
	for v, want := range map[model.Verdict]string{
		model.VerdictExcellent:  "EXCELLENT",
		model.VerdictGood:       "GOOD",
		model.VerdictAcceptable: "ACCEPTABLE",
		model.VerdictReview:     "REVIEW",
	} {
		if v.String() != want {
			t.Errorf("Verdict(%d).String() = %s, want %s", int(v), v, want)
		}
	}
}
