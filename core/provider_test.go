package core

import (
	"testing"
	"time"

	"github.com/signalsfoundry/doppler-validator/model"
)

// ISS sample TLE; exact orbital values belong to go-satellite, we only
// assert plausible geometry.
var issElements = model.SatelliteElements{
	Name:  "ISS (ZARYA)",
	Line1: "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990",
	Line2: "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760",
}

func TestSGP4Provider_PositionChangesOverTime(t *testing.T) {
	provider := NewSGP4Provider(issElements)

	t1 := time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(5 * time.Minute)

	p1, err := provider.PositionAt(t1)
	if err != nil {
		t.Fatalf("PositionAt(t1): %v", err)
	}
	p2, err := provider.PositionAt(t2)
	if err != nil {
		t.Fatalf("PositionAt(t2): %v", err)
	}

	if p1 == p2 {
		t.Fatalf("expected orbital position to change over 5 minutes, got %+v at both times", p1)
	}

	// LEO geocentric distance sits a few hundred km above the surface.
	for _, p := range []Vec3{p1, p2} {
		r := p.Norm()
		if r < 6500 || r > 7200 {
			t.Fatalf("geocentric distance %v km implausible for the ISS", r)
		}
	}
}

func TestSGP4Provider_ZoneConvertedBeforePropagation(t *testing.T) {
	provider := NewSGP4Provider(issElements)

	utc := time.Date(2021, 10, 2, 3, 0, 0, 0, time.UTC)
	zoned := utc.In(time.FixedZone("ART", -3*60*60))

	p1, err := provider.PositionAt(utc)
	if err != nil {
		t.Fatalf("PositionAt(utc): %v", err)
	}
	p2, err := provider.PositionAt(zoned)
	if err != nil {
		t.Fatalf("PositionAt(zoned): %v", err)
	}

	if p1 != p2 {
		t.Fatalf("same instant in different zones propagated differently: %+v vs %+v", p1, p2)
	}
}

func TestSGP4Provider_Name(t *testing.T) {
	provider := NewSGP4Provider(issElements)
	if provider.Name() != "ISS (ZARYA)" {
		t.Fatalf("name = %q", provider.Name())
	}
}
