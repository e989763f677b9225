package streetdf

import (
	"sync"

	"github.com/schollz/progressbar/v3"
)

type nameRegionKey struct {
	name   string
	region string
}

// buildStreets runs the grouping pipeline: segments are partitioned by
// (name, region), each partition is resolved into connected components,
// components closer than the distance threshold are fused, and every
// final component is collapsed into one street. Partitions are
// independent, so one task runs per key; streets are collected in
// worker-completion order and callers must treat the slice as
// unordered.
func (processor *Processor) buildStreets(segments []*Segment) []*Street {
	byKey := make(map[nameRegionKey][]*Segment)
	keys := []nameRegionKey{}
	for _, segment := range segments {
		key := nameRegionKey{name: segment.Name, region: segment.Region}
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], segment)
	}

	var bar *progressbar.ProgressBar
	if processor.verbose {
		bar = progressbar.Default(int64(len(keys)), "Grouping street names")
	}

	workersNum := processor.workersNum
	if workersNum < 1 {
		workersNum = 1
	}
	tasks := make(chan nameRegionKey, workersNum)
	results := make(chan []*Street, workersNum)

	wg := sync.WaitGroup{}
	for w := 0; w < workersNum; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range tasks {
				results <- groupStreets(key.name, key.region, byKey[key], processor.distanceThreshold)
				if bar != nil {
					bar.Add(1)
				}
			}
		}()
	}
	go func() {
		for _, key := range keys {
			tasks <- key
		}
		close(tasks)
		wg.Wait()
		close(results)
	}()

	streets := []*Street{}
	for group := range results {
		streets = append(streets, group...)
	}
	return streets
}

// groupStreets resolves one (name, region) partition into streets.
// Spatial merging only applies with a positive threshold and more than
// one component; with threshold zero even coincident components stay
// apart.
func groupStreets(name, region string, segments []*Segment, distanceThresholdKm float64) []*Street {
	components := connectedComponents(segments)
	if distanceThresholdKm > 0 && len(components) > 1 {
		components = mergeNearbyComponents(segments, components, distanceThresholdKm)
	}
	streets := make([]*Street, 0, len(components))
	for _, component := range components {
		members := make([]*Segment, 0, len(component))
		for _, idx := range component {
			members = append(members, segments[idx])
		}
		streets = append(streets, buildStreet(name, region, members))
	}
	return streets
}
