package model

// SatelliteElements is an opaque orbital-element set (a two-line element
// record plus its display name). Immutable once loaded; the state
// provider treats it as a black box valid over a bounded time window.
type SatelliteElements struct {
	Name  string
	Line1 string
	Line2 string

	NoradID uint32 // optional; set when the elements came from a catalog fetch
}
