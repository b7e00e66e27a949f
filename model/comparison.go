package model

import "time"

// ComparisonRecord pairs one candidate sample with the reference Doppler
// value computed for the same instant. Derived, immutable once computed.
type ComparisonRecord struct {
	Time               time.Time
	ReferenceDopplerHz float64
	CandidateDopplerHz float64
	AbsDiffHz          float64
}

// AggregateStatistics summarises the absolute differences across all
// comparison records of a run. Undefined over zero samples; the
// comparator rejects an empty series before these are ever computed.
type AggregateStatistics struct {
	MeanAbsDiffHz   float64
	MaxAbsDiffHz    float64
	StdDevAbsDiffHz float64 // sample (n-1) standard deviation; 0 when n < 2
	Samples         int
}
