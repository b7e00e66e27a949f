package model

// ObserverPosition is the geodetic location of the ground station.
// It is fixed for the lifetime of a validation run.
type ObserverPosition struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	ElevationM   float64 // metres above the WGS84 ellipsoid
}
