package tle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/signalsfoundry/doppler-validator/model"
)

const celestrakURLFormat = "https://celestrak.org/NORAD/elements/gp.php?CATNR=%d&FORMAT=TLE"

// knownSatellites maps the amateur-radio names we track to NORAD
// catalog numbers. Several satellites fly under more than one name.
var knownSatellites = map[string]uint32{
	"ISS":        25544,
	"AO-91":      43017,
	"FOX-1B":     43017,
	"RADFXSAT":   43017,
	"FO-29":      24278,
	"JAS-2":      24278,
	"FUNCUBE-1":  39444,
	"AO-73":      39444,
	"LILACSAT-2": 40069,
	"CAS-3H":     40069,
}

// Fetcher downloads current orbital elements from CelesTrak.
type Fetcher struct {
	baseURL    string // overridable for tests; empty means CelesTrak
	httpClient *http.Client
}

// NewFetcher creates a fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// LookupNoradID resolves a known satellite name (case-insensitive) to
// its NORAD catalog number.
func LookupNoradID(name string) (uint32, error) {
	id, ok := knownSatellites[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown satellite %q", name)
	}
	return id, nil
}

// FetchByNoradID downloads the current TLE for a catalog number.
func (f *Fetcher) FetchByNoradID(ctx context.Context, noradID uint32) (model.SatelliteElements, error) {
	url := fmt.Sprintf(celestrakURLFormat, noradID)
	if f.baseURL != "" {
		url = fmt.Sprintf("%s?CATNR=%d&FORMAT=TLE", f.baseURL, noradID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.SatelliteElements{}, fmt.Errorf("creating TLE request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return model.SatelliteElements{}, fmt.Errorf("fetching TLE for NORAD %d: %w", noradID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.SatelliteElements{}, fmt.Errorf("unexpected status %d fetching TLE for NORAD %d", resp.StatusCode, noradID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.SatelliteElements{}, fmt.Errorf("reading TLE response: %w", err)
	}

	elements, err := Parse(bytes.NewReader(body), fmt.Sprintf("celestrak NORAD %d", noradID))
	if err != nil {
		return model.SatelliteElements{}, err
	}
	if elements.NoradID == 0 {
		elements.NoradID = noradID
	}
	return elements, nil
}

// FetchByName resolves a known satellite name and downloads its TLE.
func (f *Fetcher) FetchByName(ctx context.Context, name string) (model.SatelliteElements, error) {
	id, err := LookupNoradID(name)
	if err != nil {
		return model.SatelliteElements{}, err
	}
	return f.FetchByNoradID(ctx, id)
}
