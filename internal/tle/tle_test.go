package tle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalsfoundry/doppler-validator/model"
)

const issTLE = `ISS (ZARYA)
1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990
2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760
`

func TestParse_ValidRecord(t *testing.T) {
	elements, err := Parse(strings.NewReader(issTLE), "test")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if elements.Name != "ISS (ZARYA)" {
		t.Errorf("name = %q", elements.Name)
	}
	if elements.NoradID != 25544 {
		t.Errorf("norad id = %d, want 25544", elements.NoradID)
	}
	if !strings.HasPrefix(elements.Line1, "1 25544U") {
		t.Errorf("line1 = %q", elements.Line1)
	}
}

func TestParse_IgnoresBlankLines(t *testing.T) {
	padded := "\n" + strings.ReplaceAll(issTLE, "\n", "\n\n")
	elements, err := Parse(strings.NewReader(padded), "test")
	if err != nil {
		t.Fatalf("Parse with blank lines: %v", err)
	}
	if elements.NoradID != 25544 {
		t.Errorf("norad id = %d, want 25544", elements.NoradID)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"too few lines":  "ISS (ZARYA)\n1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990\n",
		"bad prefixes":   "ISS\nX 25544U 98067A   21275.59097222  .00000204\nY 25544  51.6459\n",
		"truncated line": "ISS\n1 25544U\n2 25544\n",
	}
	for name, raw := range cases {
		if _, err := Parse(strings.NewReader(raw), "test"); !errors.Is(err, model.ErrMalformedInput) {
			t.Errorf("%s: error = %v, want ErrMalformedInput", name, err)
		}
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.tle"))
	if !errors.Is(err, model.ErrMissingInput) {
		t.Fatalf("error = %v, want ErrMissingInput", err)
	}
	if !strings.Contains(err.Error(), UpstreamDirective) {
		t.Fatalf("error %q lacks the upstream directive", err)
	}
}

func TestLoadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iss.tle")
	if err := os.WriteFile(path, []byte(issTLE), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	elements, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if elements.Name != "ISS (ZARYA)" || elements.NoradID != 25544 {
		t.Fatalf("unexpected elements %+v", elements)
	}
}

func TestLookupNoradID(t *testing.T) {
	for name, want := range map[string]uint32{
		"ISS":         25544,
		"iss":         25544,
		"AO-91":       43017,
		"fox-1b":      43017,
		"FO-29":       24278,
		"AO-73":       39444,
		"CAS-3H":      40069,
		" FUNCUBE-1 ": 39444,
	} {
		got, err := LookupNoradID(name)
		if err != nil {
			t.Errorf("LookupNoradID(%q): %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("LookupNoradID(%q) = %d, want %d", name, got, want)
		}
	}

	if _, err := LookupNoradID("SPUTNIK-1"); err == nil {
		t.Errorf("expected unknown-satellite error")
	}
}

func TestFetchByNoradID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("CATNR"); got != "25544" {
			t.Errorf("CATNR = %q, want 25544", got)
		}
		_, _ = w.Write([]byte(issTLE))
	}))
	defer srv.Close()

	f := NewFetcher()
	f.baseURL = srv.URL

	elements, err := f.FetchByNoradID(context.Background(), 25544)
	if err != nil {
		t.Fatalf("FetchByNoradID: %v", err)
	}
	if elements.Name != "ISS (ZARYA)" || elements.NoradID != 25544 {
		t.Fatalf("unexpected elements %+v", elements)
	}
}

func TestFetchByNoradID_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher()
	f.baseURL = srv.URL

	if _, err := f.FetchByNoradID(context.Background(), 25544); err == nil {
		t.Fatalf("expected error on HTTP 502")
	}
}
