package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/doppler-validator/core"
	"github.com/signalsfoundry/doppler-validator/model"
)

func sampleResult() *core.RunResult {
	base := time.Date(2021, 10, 2, 14, 0, 0, 0, time.UTC)
	return &core.RunResult{
		Records: []model.ComparisonRecord{
			{Time: base, ReferenceDopplerHz: -3401.5, CandidateDopplerHz: -3400.25, AbsDiffHz: 1.25},
			{Time: base.Add(10 * time.Second), ReferenceDopplerHz: -3380, CandidateDopplerHz: -3382.5, AbsDiffHz: 2.5},
		},
		Stats: model.AggregateStatistics{
			MeanAbsDiffHz:   1.875,
			MaxAbsDiffHz:    2.5,
			StdDevAbsDiffHz: 0.883883,
			Samples:         2,
		},
		Verdict: model.VerdictExcellent,
		Profile: core.PassProfile{
			MaxElevationDeg: 47.3,
			MaxElevationAt:  base.Add(10 * time.Second),
			MinRangeKm:      612.4,
			ClosestApproach: base.Add(10 * time.Second),
		},
	}
}

func TestWriteSummary(t *testing.T) {
	var sb strings.Builder
	if err := WriteSummary(&sb, sampleResult(), 145800000, core.DefaultThresholds); err != nil {
		t.Fatalf("WriteSummary error: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"Doppler @ 145.8 MHz:",
		"Mean difference:",
		"1.88 Hz",
		"Max difference:",
		"Std deviation:",
		"Samples compared:",
		"EXCELLENT: 1.88 Hz (< 2 Hz)",
		"Max elevation:",
		"Closest approach:",
		"2021-10-02T14:00:10Z",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryVerdictBounds(t *testing.T) {
	cases := []struct {
		verdict model.Verdict
		mean    float64
		want    string
	}{
		{model.VerdictExcellent, 1.2, "EXCELLENT: 1.20 Hz (< 2 Hz)"},
		{model.VerdictGood, 6.5, "GOOD: 6.50 Hz (< 10 Hz)"},
		{model.VerdictAcceptable, 30, "ACCEPTABLE: 30.00 Hz (< 50 Hz)"},
		{model.VerdictReview, 75, "REVIEW: 75.00 Hz (>= 50 Hz)"},
	}
	for _, tc := range cases {
		result := sampleResult()
		result.Verdict = tc.verdict
		result.Stats.MeanAbsDiffHz = tc.mean

		var sb strings.Builder
		if err := WriteSummary(&sb, result, 145800000, core.Thresholds{}); err != nil {
			t.Fatalf("WriteSummary(%v) error: %v", tc.verdict, err)
		}
		if !strings.Contains(sb.String(), tc.want) {
			t.Fatalf("summary for %v missing %q:\n%s", tc.verdict, tc.want, sb.String())
		}
	}
}

func TestWriteSummaryNilResult(t *testing.T) {
	var sb strings.Builder
	if err := WriteSummary(&sb, nil, 145800000, core.DefaultThresholds); err == nil {
		t.Fatalf("expected error for nil result")
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	result := sampleResult()
	var sb strings.Builder
	if err := WriteRecordsCSV(&sb, result.Records); err != nil {
		t.Fatalf("WriteRecordsCSV error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-read CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}
	wantHeader := []string{"timestamp", "reference_doppler_hz", "candidate_doppler_hz", "abs_diff_hz"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "2021-10-02T14:00:00Z" {
		t.Fatalf("record timestamp = %q, want 2021-10-02T14:00:00Z", rows[1][0])
	}
	if rows[1][3] != "1.25" {
		t.Fatalf("record abs diff = %q, want 1.25", rows[1][3])
	}
}

func TestExportRecordsFile(t *testing.T) {
	result := sampleResult()
	path := filepath.Join(t.TempDir(), "records.csv")
	if err := ExportRecordsFile(path, result.Records); err != nil {
		t.Fatalf("ExportRecordsFile error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !strings.HasPrefix(string(data), "timestamp,reference_doppler_hz") {
		t.Fatalf("unexpected file contents: %s", data)
	}
}
