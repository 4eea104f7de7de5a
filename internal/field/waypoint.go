// Package field encodes single waypoint values into the fixed-width byte and
// text fields shared by every Raymarine export format.
//
// Nothing in this package keeps state between calls except the Identifiers
// counter, which callers create fresh for each export.
package field

// Waypoint is a named geographic point as supplied by an input loader.
//
// Coordinates are signed decimal degrees (WGS-84). Name is the raw display name;
// it is sanitized at export time, never on load.
type Waypoint struct {
	Lat  float64
	Lon  float64
	Name string
}
