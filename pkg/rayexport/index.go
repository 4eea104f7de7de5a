package rayexport

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// pointTolerance is the half-width, in degrees, of the box stored for each
// waypoint. The R-tree needs boxes with a non-zero extent.
const pointTolerance = 1e-9

// Index provides fast spatial queries over a waypoint list.
//
// Waypoints are stored in an R-tree keyed by position. Query results are
// always returned in input order, so a filtered list exports
// with the same relative numbering and route order as the full list.
//
// Example:
//
//	idx := rayexport.NewIndex(waypoints)
//	sound := rayexport.Bounds{MinLon: -73.8, MaxLon: -72.0, MinLat: 40.9, MaxLat: 41.4}
//	inSound := idx.Within(sound)
type Index struct {
	waypoints []Waypoint
	rtree     *rtreego.Rtree // Spatial index for fast queries
}

// indexEntry is a waypoint with its input position.
type indexEntry struct {
	pos int
	wp  Waypoint
}

// Bounds method for rtreego.Spatial interface.
// Converts the waypoint to a tiny R-tree rectangle centred on it.
func (e indexEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.wp.Lon - pointTolerance, e.wp.Lat - pointTolerance}
	rect, _ := rtreego.NewRect(point, []float64{2 * pointTolerance, 2 * pointTolerance})
	return rect
}

// NewIndex builds an index over waypoints. The slice is not copied; do not
// modify it while the index is in use.
func NewIndex(waypoints []Waypoint) *Index {
	// Create R-tree (2D, min=25 children, max=50 children)
	rtree := rtreego.NewTree(2, 25, 50)
	for i, wp := range waypoints {
		rtree.Insert(indexEntry{pos: i, wp: wp})
	}

	return &Index{
		waypoints: waypoints,
		rtree:     rtree,
	}
}

// Within returns the waypoints inside bounds (edges included), in input order.
func (idx *Index) Within(bounds Bounds) []Waypoint {
	// Grow the query box so zero-width bounds still form a valid rectangle;
	// Contains below applies the exact edges.
	q := bounds.Expand(pointTolerance)
	point := rtreego.Point{q.MinLon, q.MinLat}
	lengths := []float64{q.MaxLon - q.MinLon, q.MaxLat - q.MinLat}
	queryRect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	var hits []indexEntry
	for _, spatial := range idx.rtree.SearchIntersect(queryRect) {
		entry := spatial.(indexEntry)
		if bounds.Contains(entry.wp.Lon, entry.wp.Lat) {
			hits = append(hits, entry)
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	result := make([]Waypoint, len(hits))
	for i, h := range hits {
		result[i] = h.wp
	}
	return result
}

// Len returns the number of indexed waypoints.
func (idx *Index) Len() int {
	return len(idx.waypoints)
}

// Bounds returns the smallest box containing every waypoint.
func (idx *Index) Bounds() Bounds {
	if len(idx.waypoints) == 0 {
		return Bounds{}
	}

	first := idx.waypoints[0]
	bounds := Bounds{MinLon: first.Lon, MaxLon: first.Lon, MinLat: first.Lat, MaxLat: first.Lat}
	for _, wp := range idx.waypoints[1:] {
		bounds = bounds.Union(Bounds{MinLon: wp.Lon, MaxLon: wp.Lon, MinLat: wp.Lat, MaxLat: wp.Lat})
	}
	return bounds
}
