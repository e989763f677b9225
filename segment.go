package streetdf

import (
	"github.com/paulmach/osm"
)

// Segment is a single qualifying OSM way: a named highway with at least
// one resolvable coordinate.
//
// NodeIDs always carries the raw reference list of the way and is used
// for connectivity only; Coords carries the subsequence of references
// that resolved to a coordinate, in original order, and is used for
// geometry only. The two are not guaranteed to be of equal length.
type Segment struct {
	Name        string
	Region      string
	WayID       osm.WayID
	NodeIDs     []osm.NodeID
	Coords      []GeoPoint
	HighwayType string
	Tags        map[string]string
}

// RepPoint returns representative coordinates of segment (its first point)
func (segment *Segment) RepPoint() GeoPoint {
	return segment.Coords[0]
}

// Street is a deduplicated street: one or more segments of the same
// name and region merged by node connectivity and (optionally) spatial
// proximity.
type Street struct {
	Name        string
	Region      string
	RepPoint    GeoPoint
	NumSegments int
	HighwayType string
	Tags        map[string]string
}
