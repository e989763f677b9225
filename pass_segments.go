package streetdf

import (
	"github.com/paulmach/osm"
)

// extractSegments performs the third pass: it rebuilds per-way node and
// coordinate sequences for every named highway. NodeIDs keeps the raw
// reference list; Coords keeps only the references that resolved, in
// original order. Ways missing either tag or resolving to zero
// coordinates are dropped without an error.
func extractSegments(scanner OSMScanner, coords map[osm.NodeID]GeoPoint, region string) ([]*Segment, error) {
	segments := []*Segment{}
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		name := way.Tags.Find("name")
		highwayType := way.Tags.Find("highway")
		if name == "" || highwayType == "" {
			continue
		}
		nodeIDs := make([]osm.NodeID, 0, len(way.Nodes))
		points := make([]GeoPoint, 0, len(way.Nodes))
		for _, wayNode := range way.Nodes {
			nodeIDs = append(nodeIDs, wayNode.ID)
			if pt, ok := coords[wayNode.ID]; ok {
				points = append(points, pt)
			}
		}
		if len(points) == 0 {
			continue
		}
		segments = append(segments, &Segment{
			Name:        name,
			Region:      region,
			WayID:       way.ID,
			NodeIDs:     nodeIDs,
			Coords:      points,
			HighwayType: highwayType,
			Tags:        way.TagMap(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return segments, nil
}
