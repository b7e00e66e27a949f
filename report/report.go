// Package report renders validation results for operators: a console
// summary and a CSV export of per-sample comparison records for external
// plotting. Chart rendering itself lives outside this repository.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/signalsfoundry/doppler-validator/core"
	"github.com/signalsfoundry/doppler-validator/model"
)

// WriteSummary renders the statistics block, the verdict line, and the pass
// profile as plain text.
func WriteSummary(w io.Writer, result *core.RunResult, carrierHz float64, thresholds core.Thresholds) error {
	if result == nil {
		return fmt.Errorf("nil result")
	}
	if thresholds == (core.Thresholds{}) {
		thresholds = core.DefaultThresholds
	}

	stats := result.Stats
	if _, err := fmt.Fprintf(w, "============= RESULTS ==============\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Doppler @ %s MHz:\n", formatMHz(carrierHz)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Mean difference:   %10.2f Hz\n", stats.MeanAbsDiffHz); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Max difference:    %10.2f Hz\n", stats.MaxAbsDiffHz); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Std deviation:     %10.2f Hz\n", stats.StdDevAbsDiffHz); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Samples compared:  %10d\n", stats.Samples); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n============ ASSESSMENT ============\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s: %.2f Hz (%s)\n", result.Verdict, stats.MeanAbsDiffHz, verdictBound(result.Verdict, thresholds)); err != nil {
		return err
	}

	profile := result.Profile
	if _, err := fmt.Fprintf(w, "\nPass profile:\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Max elevation:     %8.2f deg at %s\n", profile.MaxElevationDeg, profile.MaxElevationAt.Format(time.RFC3339)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  Closest approach:  %8.2f km  at %s\n", profile.MinRangeKm, profile.ClosestApproach.Format(time.RFC3339))
	return err
}

func verdictBound(v model.Verdict, t core.Thresholds) string {
	switch v {
	case model.VerdictExcellent:
		return fmt.Sprintf("< %s Hz", formatHz(t.ExcellentHz))
	case model.VerdictGood:
		return fmt.Sprintf("< %s Hz", formatHz(t.GoodHz))
	case model.VerdictAcceptable:
		return fmt.Sprintf("< %s Hz", formatHz(t.AcceptableHz))
	default:
		return fmt.Sprintf(">= %s Hz", formatHz(t.AcceptableHz))
	}
}

func formatMHz(carrierHz float64) string {
	return strconv.FormatFloat(carrierHz/1e6, 'f', -1, 64)
}

func formatHz(hz float64) string {
	return strconv.FormatFloat(hz, 'f', -1, 64)
}

// WriteRecordsCSV writes the ordered comparison records with a header row.
func WriteRecordsCSV(w io.Writer, records []model.ComparisonRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "reference_doppler_hz", "candidate_doppler_hz", "abs_diff_hz"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Time.Format(time.RFC3339Nano),
			strconv.FormatFloat(rec.ReferenceDopplerHz, 'f', -1, 64),
			strconv.FormatFloat(rec.CandidateDopplerHz, 'f', -1, 64),
			strconv.FormatFloat(rec.AbsDiffHz, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportRecordsFile writes the comparison records to a CSV file at path.
func ExportRecordsFile(path string, records []model.ComparisonRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create records file: %w", err)
	}
	if err := WriteRecordsCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
