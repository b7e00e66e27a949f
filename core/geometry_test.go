package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/doppler-validator/model"
)

func TestGeodeticToECEF_Equator(t *testing.T) {
	// Sea level on the equator at the prime meridian sits on the X axis
	// at the WGS84 semi-major axis.
	got := GeodeticToECEF(model.ObserverPosition{LatitudeDeg: 0, LongitudeDeg: 0, ElevationM: 0})

	if math.Abs(got.X-6378.137) > 1e-6 {
		t.Errorf("equator X = %v km, want 6378.137", got.X)
	}
	if math.Abs(got.Y) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Errorf("equator Y/Z = %v/%v km, want 0/0", got.Y, got.Z)
	}
}

func TestGeodeticToECEF_Pole(t *testing.T) {
	// The north pole lies on the Z axis at the semi-minor axis,
	// a*sqrt(1-e^2).
	got := GeodeticToECEF(model.ObserverPosition{LatitudeDeg: 90, LongitudeDeg: 0, ElevationM: 0})

	wantZ := 6378.137 * math.Sqrt(1-wgs84Ecc2)
	if math.Abs(got.Z-wantZ) > 1e-6 {
		t.Errorf("pole Z = %v km, want %v", got.Z, wantZ)
	}
	if math.Abs(got.X) > 1e-6 || math.Abs(got.Y) > 1e-6 {
		t.Errorf("pole X/Y = %v/%v km, want ~0/0", got.X, got.Y)
	}
}

func TestGeodeticToECEF_ElevationMovesRadiallyOut(t *testing.T) {
	obs := model.ObserverPosition{LatitudeDeg: -34.6037, LongitudeDeg: -58.3816}
	atGround := GeodeticToECEF(obs)

	obs.ElevationM = 1000
	raised := GeodeticToECEF(obs)

	if raised.Norm() <= atGround.Norm() {
		t.Errorf("raising the observer should grow the geocentric distance, got %v -> %v",
			atGround.Norm(), raised.Norm())
	}
	// 1 km of ellipsoidal height moves the point by roughly 1 km.
	moved := raised.DistanceTo(atGround)
	if moved < 0.9 || moved > 1.1 {
		t.Errorf("1000 m of elevation moved the point %v km, want ~1", moved)
	}
}

func TestSlantRange_IsStraightLineNotGroundDistance(t *testing.T) {
	// Satellite directly overhead a station on the equator: slant range
	// is the altitude, regardless of any ground projection.
	observer := Vec3{X: 6378.137, Y: 0, Z: 0}
	sat := Vec3{X: 6878.137, Y: 0, Z: 0}

	if got := SlantRangeKm(observer, sat); math.Abs(got-500) > 1e-9 {
		t.Errorf("slant range = %v km, want 500", got)
	}
}

func TestElevationDegrees_Overhead(t *testing.T) {
	observer := Vec3{X: 6378.137, Y: 0, Z: 0}
	sat := Vec3{X: 6878.137, Y: 0, Z: 0}

	if got := ElevationDegrees(observer, sat); math.Abs(got-90) > 1e-9 {
		t.Errorf("overhead elevation = %v, want 90", got)
	}
}

func TestElevationDegrees_HorizonAndBelow(t *testing.T) {
	observer := Vec3{X: 6378.137, Y: 0, Z: 0}

	// Target along the local horizontal plane (pure Y offset) sits on
	// the geometric horizon.
	horizon := Vec3{X: 6378.137, Y: 2000, Z: 0}
	if got := ElevationDegrees(observer, horizon); math.Abs(got) > 1e-9 {
		t.Errorf("horizon elevation = %v, want 0", got)
	}

	// Target on the far side of Earth is below the horizon.
	below := Vec3{X: -6378.137, Y: 0, Z: 0}
	if got := ElevationDegrees(observer, below); got >= 0 {
		t.Errorf("antipodal target elevation = %v, want negative", got)
	}
}
