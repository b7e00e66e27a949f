package core

import (
	"math"

	"github.com/signalsfoundry/doppler-validator/model"
)

// WGS84 ellipsoid parameters used to place the ground station in ECEF.
const (
	wgs84SemiMajorM = 6378137.0
	wgs84Ecc2       = 6.69437999014e-3
)

// Vec3 is an ECEF-style vector in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// GeodeticToECEF converts the observer's geodetic position to an ECEF
// point in kilometres on the WGS84 ellipsoid.
func GeodeticToECEF(obs model.ObserverPosition) Vec3 {
	lat := obs.LatitudeDeg * math.Pi / 180.0
	lon := obs.LongitudeDeg * math.Pi / 180.0

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	sinLon := math.Sin(lon)
	cosLon := math.Cos(lon)

	// Prime vertical radius of curvature at the observer's latitude.
	n := wgs84SemiMajorM / math.Sqrt(1.0-wgs84Ecc2*sinLat*sinLat)

	const mToKm = 1.0 / 1000.0
	return Vec3{
		X: (n + obs.ElevationM) * cosLat * cosLon * mToKm,
		Y: (n + obs.ElevationM) * cosLat * sinLon * mToKm,
		Z: ((1.0-wgs84Ecc2)*n + obs.ElevationM) * sinLat * mToKm,
	}
}

// SlantRangeKm returns the true three-dimensional line-of-sight distance
// between the observer and the satellite, not the ground-projected
// distance. Pure function of its inputs.
func SlantRangeKm(observer, sat Vec3) float64 {
	return observer.DistanceTo(sat)
}

// ElevationDegrees returns the elevation angle of the target as seen from
// the observer, in degrees. 0° = geometric horizon, 90° = overhead.
func ElevationDegrees(observer, target Vec3) float64 {
	// Vector from observer to target.
	v := target.Sub(observer)
	vNorm := v.Norm()
	if vNorm == 0 {
		return 90
	}

	// Local zenith at observer is its normalised position vector.
	r := observer.Norm()
	if r == 0 {
		return 90
	}
	zenith := Vec3{
		X: observer.X / r,
		Y: observer.Y / r,
		Z: observer.Z / r,
	}

	// Angle between v and zenith.
	cosGamma := v.Dot(zenith) / vNorm
	if cosGamma > 1 {
		cosGamma = 1
	} else if cosGamma < -1 {
		cosGamma = -1
	}
	gammaDeg := math.Acos(cosGamma) * 180.0 / math.Pi

	// Elevation is measured from local horizon (90° − zenith angle).
	return 90.0 - gammaDeg
}
