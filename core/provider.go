package core

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/doppler-validator/model"
)

// StateProvider resolves a satellite's ECEF position (kilometres) for a
// timestamp. Implementations are treated as a black box: given a valid
// timestamp within the elements' validity span they return a position,
// otherwise an error wrapping model.ErrPropagation.
type StateProvider interface {
	PositionAt(t time.Time) (Vec3, error)
}

// SGP4Provider propagates a TLE with SGP4 and answers in ECEF km.
type SGP4Provider struct {
	name string
	sat  satellite.Satellite
}

// NewSGP4Provider constructs a provider from orbital elements. The
// element lines must already have passed structural validation.
func NewSGP4Provider(elements model.SatelliteElements) *SGP4Provider {
	sat := satellite.TLEToSat(elements.Line1, elements.Line2, satellite.GravityWGS72)
	return &SGP4Provider{name: elements.Name, sat: sat}
}

// Name returns the display name of the satellite being propagated.
func (p *SGP4Provider) Name() string { return p.name }

// PositionAt propagates the satellite to t and rotates the ECI result
// into ECEF. Timestamps without a location are interpreted as UTC, never
// local time; everything is normalised to UTC before propagation.
func (p *SGP4Provider) PositionAt(t time.Time) (Vec3, error) {
	utc := AsUTC(t)
	year, month, day := utc.Date()
	hour, min, sec := utc.Clock()

	posECI, _ := satellite.Propagate(p.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	pos := Vec3{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z}
	if !finite(pos) || pos == (Vec3{}) {
		// SGP4 signals decay / out-of-window states through degenerate
		// output rather than an error return.
		return Vec3{}, model.PropagationError(p.name, utc)
	}
	return pos, nil
}

// AsUTC normalises a timestamp for propagation: any explicit zone is
// converted to the same instant in UTC. Zone-less inputs are already
// stamped UTC by the series reader, the single naive-to-UTC conversion
// point.
func AsUTC(t time.Time) time.Time {
	return t.UTC()
}

func finite(v Vec3) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}
