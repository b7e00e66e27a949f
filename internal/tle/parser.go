// Package tle loads and validates three-line orbital element records:
// a display name followed by the two element lines.
package tle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signalsfoundry/doppler-validator/model"
)

// Parse reads one three-line record from r. Blank lines are ignored;
// anything structurally short of a name plus two element lines is
// rejected as malformed before any propagation can happen.
func Parse(r io.Reader, source string) (model.SatelliteElements, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return model.SatelliteElements{}, fmt.Errorf("reading orbital elements from %s: %w", source, err)
	}

	if len(lines) < 3 {
		return model.SatelliteElements{}, model.MalformedInputError(source,
			fmt.Sprintf("expected 3 TLE lines, found %d", len(lines)))
	}

	name, line1, line2 := lines[0], lines[1], lines[2]
	if !strings.HasPrefix(line1, "1 ") || !strings.HasPrefix(line2, "2 ") {
		return model.SatelliteElements{}, model.MalformedInputError(source,
			"element lines must start with '1 ' and '2 '")
	}
	if len(line1) < 32 || len(line2) < 32 {
		return model.SatelliteElements{}, model.MalformedInputError(source, "element line truncated")
	}

	elements := model.SatelliteElements{Name: name, Line1: line1, Line2: line2}

	// NORAD ID sits in columns 3-7 of line 1.
	if id, err := strconv.Atoi(strings.TrimSpace(line1[2:7])); err == nil && id > 0 {
		elements.NoradID = uint32(id)
	}

	return elements, nil
}
