package streetdf

import (
	"sync"

	"github.com/paulmach/osm"
)

// coordsPartial is one worker's share of the second pass. Node ids are
// visited exactly once across the whole stream, so the coordinate maps
// of different workers never share a key and merging is a plain union.
type coordsPartial struct {
	coords     map[osm.NodeID]GeoPoint
	nodesNum   int
	matchedNum int
}

func newCoordsPartial() *coordsPartial {
	return &coordsPartial{coords: make(map[osm.NodeID]GeoPoint)}
}

func (partial *coordsPartial) merge(other *coordsPartial) {
	for id, pt := range other.coords {
		partial.coords[id] = pt
	}
	partial.nodesNum += other.nodesNum
	partial.matchedNum += other.matchedNum
}

type nodeRef struct {
	id  osm.NodeID
	lat float64
	lon float64
}

// loadCoordinates performs the second pass: it resolves coordinates for
// every node present in the filter set. The stream is cut into disjoint
// batches fanned out to workers; each worker owns a private partial
// result and the partials are merged after the barrier join. Returns
// the coordinate mapping, the total number of nodes scanned and the
// number matched against the filter set.
func loadCoordinates(scanner OSMScanner, highwayNodes map[osm.NodeID]struct{}, workersNum, batchSize int) (map[osm.NodeID]GeoPoint, int, int, error) {
	if workersNum < 1 {
		workersNum = 1
	}
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}

	batches := make(chan []nodeRef, workersNum)
	partials := make([]*coordsPartial, workersNum)
	wg := sync.WaitGroup{}
	for w := 0; w < workersNum; w++ {
		partial := newCoordsPartial()
		partials[w] = partial
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batches {
				for _, ref := range batch {
					partial.nodesNum++
					if _, ok := highwayNodes[ref.id]; !ok {
						continue
					}
					partial.matchedNum++
					partial.coords[ref.id] = GeoPoint{Lat: ref.lat, Lon: ref.lon}
				}
			}
		}()
	}

	batch := make([]nodeRef, 0, batchSize)
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		batch = append(batch, nodeRef{id: node.ID, lat: node.Lat, lon: node.Lon})
		if len(batch) == batchSize {
			batches <- batch
			batch = make([]nodeRef, 0, batchSize)
		}
	}
	if len(batch) > 0 {
		batches <- batch
	}
	close(batches)
	wg.Wait()
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, err
	}

	combined := newCoordsPartial()
	for _, partial := range partials {
		combined.merge(partial)
	}
	return combined.coords, combined.nodesNum, combined.matchedNum, nil
}
