package model

import (
	"sort"
	"time"
)

// TimeSample is one externally produced Doppler measurement: a UTC
// timestamp and the measured shift in Hz at the run's carrier frequency.
type TimeSample struct {
	Time      time.Time
	DopplerHz float64
}

// CandidateSeries is the externally produced Doppler series under test.
// Insertion order is usually chronological but not guaranteed, so the
// series is keyed by timestamp, never by position.
type CandidateSeries []TimeSample

// SortedByTime returns a copy of the series in ascending timestamp order.
// The receiver is left untouched.
func (s CandidateSeries) SortedByTime() CandidateSeries {
	out := make(CandidateSeries, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}
