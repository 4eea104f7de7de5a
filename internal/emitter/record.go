package emitter

import (
	"github.com/beetlebugorg/rayexport/internal/field"
)

// Record is one waypoint as it appears in an export file: sanitized names and
// the synthetic identifier assigned during the call.
type Record struct {
	Lat   float64
	Lon   float64
	Name  string
	Group string
	ID    string
	Time  float64
}

// Route is the derived route: an ordered list of mark names.
type Route struct {
	Name  string
	ID    string
	Marks []string
}

// prepare sanitizes names and numbers the waypoints. Every emitter goes
// through here so identifiers are assigned the same way for every format.
func prepare(waypoints []field.Waypoint, opts Options) []Record {
	group := field.SanitizeName(opts.Group)

	var ids field.Identifiers
	records := make([]Record, len(waypoints))
	for i, wp := range waypoints {
		records[i] = Record{
			Lat:   wp.Lat,
			Lon:   wp.Lon,
			Name:  field.SanitizeName(wp.Name),
			Group: group,
			ID:    ids.Next(),
			Time:  opts.Time,
		}
	}
	return records
}

// deriveRoute returns nil unless a route was requested and there is
// something to visit.
func deriveRoute(records []Record, opts Options) *Route {
	if !opts.IncludeRoute || len(records) == 0 {
		return nil
	}

	marks := make([]string, len(records))
	for i, r := range records {
		marks[i] = r.Name
	}

	return &Route{
		Name:  field.SanitizeName(opts.Group),
		ID:    field.RouteIdentifier,
		Marks: marks,
	}
}
