package model

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds shared across the pipeline and its input loaders. A run
// either completes or fails outright; every kind below aborts the run.
var (
	// ErrMissingInput marks an absent or unreadable upstream artifact
	// (orbital elements or candidate series). The wrapped message tells
	// the operator which upstream producer must run first.
	ErrMissingInput = errors.New("missing upstream artifact")

	// ErrMalformedInput marks inputs that fail structural validation
	// before any computation starts.
	ErrMalformedInput = errors.New("malformed input")

	// ErrPropagation marks a timestamp for which the orbital state
	// provider could not resolve a satellite state.
	ErrPropagation = errors.New("orbital state propagation failed")

	// ErrEmptySeries marks a candidate series with zero usable samples;
	// aggregate statistics over zero samples are undefined.
	ErrEmptySeries = errors.New("empty candidate series")
)

// MissingInputError wraps ErrMissingInput with the path that was absent
// and a directive pointing the operator at the upstream producer.
func MissingInputError(path, directive string) error {
	return fmt.Errorf("%w: %s (%s)", ErrMissingInput, path, directive)
}

// MalformedInputError wraps ErrMalformedInput with the offending source
// and a reason.
func MalformedInputError(source, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedInput, source, reason)
}

// PropagationError wraps ErrPropagation with the satellite and the
// timestamp that could not be resolved.
func PropagationError(satellite string, t time.Time) error {
	return fmt.Errorf("%w: %s at %s", ErrPropagation, satellite, t.UTC().Format(time.RFC3339))
}
