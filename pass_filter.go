package streetdf

import (
	"github.com/paulmach/osm"
)

// collectHighwayNodes performs the first pass: it records every node id
// referenced by a way carrying both a "name" and a "highway" tag.
// Returns the id set and the number of qualifying ways seen.
func collectHighwayNodes(scanner OSMScanner) (map[osm.NodeID]struct{}, int, error) {
	highwayNodes := make(map[osm.NodeID]struct{})
	waysNum := 0
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		if way.Tags.Find("name") == "" || way.Tags.Find("highway") == "" {
			continue
		}
		waysNum++
		for _, wayNode := range way.Nodes {
			highwayNodes[wayNode.ID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return highwayNodes, waysNum, nil
}
