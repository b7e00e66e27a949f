// Package series reads the externally produced candidate Doppler series.
//
// The producer emits tabular CSV with a timestamp column and one value
// column per carrier, named like "doppler_145.8MHz_Hz". Loading is the
// single point where loosely typed rows become typed samples and where
// naive timestamps are pinned to UTC.
package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/signalsfoundry/doppler-validator/model"
)

// UpstreamDirective points the operator at the producer that writes the
// candidate CSV.
const UpstreamDirective = "run the candidate producer first to generate the Doppler series"

const timestampColumn = "timestamp"

// Accepted timestamp layouts. Layouts without a zone are interpreted as
// UTC, never local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ColumnForCarrier returns the canonical value column name for a
// carrier, e.g. 145800000 Hz -> "doppler_145.8MHz_Hz".
func ColumnForCarrier(carrierHz float64) string {
	mhz := strconv.FormatFloat(carrierHz/1e6, 'f', -1, 64)
	return fmt.Sprintf("doppler_%sMHz_Hz", mhz)
}

// columnsForCarrier lists the accepted spellings of the value column.
// Integral-MHz carriers appear either bare ("doppler_437MHz_Hz") or
// with the producer's fixed one-decimal form ("doppler_437.0MHz_Hz").
func columnsForCarrier(carrierHz float64) []string {
	names := []string{ColumnForCarrier(carrierHz)}
	mhz := carrierHz / 1e6
	if mhz == math.Trunc(mhz) {
		names = append(names, fmt.Sprintf("doppler_%.1fMHz_Hz", mhz))
	}
	return names
}

// Read decodes candidate samples for the given carrier from CSV data.
// A header lacking the timestamp column or the carrier's value column
// is a malformed input; so is any cell that fails to parse.
func Read(r io.Reader, source string, carrierHz float64) (model.CandidateSeries, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, model.MalformedInputError(source, "no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", source, err)
	}

	valueColumns := columnsForCarrier(carrierHz)
	timeIdx, valueIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == timestampColumn {
			timeIdx = i
			continue
		}
		for _, candidate := range valueColumns {
			if name == candidate {
				valueIdx = i
				break
			}
		}
	}
	if timeIdx < 0 {
		return nil, model.MalformedInputError(source, fmt.Sprintf("missing %q column", timestampColumn))
	}
	if valueIdx < 0 {
		return nil, model.MalformedInputError(source, fmt.Sprintf("missing %q column", valueColumns[0]))
	}

	var out model.CandidateSeries
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s line %d: %w", source, line, err)
		}

		ts, err := parseTimestamp(record[timeIdx])
		if err != nil {
			return nil, model.MalformedInputError(source,
				fmt.Sprintf("line %d: bad timestamp %q", line, record[timeIdx]))
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			return nil, model.MalformedInputError(source,
				fmt.Sprintf("line %d: bad doppler value %q", line, record[valueIdx]))
		}

		out = append(out, model.TimeSample{Time: ts, DopplerHz: value})
	}

	return out, nil
}

// LoadFile reads the candidate series from disk, mapping an absent file
// onto the missing-upstream-artifact condition.
func LoadFile(path string, carrierHz float64) (model.CandidateSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.MissingInputError(path, UpstreamDirective)
		}
		return nil, model.MissingInputError(path, err.Error())
	}
	defer f.Close()

	return Read(f, path, carrierHz)
}

// parseTimestamp is the one conversion point from textual timestamps to
// zone-aware times. Zone-less layouts land directly in UTC.
func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}
