package streetdf

// buildStreet derives a single street record from the member segments
// of one final component. The representative point is the first
// coordinate of the first segment, which depends on traversal order.
func buildStreet(name, region string, segments []*Segment) *Street {
	return &Street{
		Name:        name,
		Region:      region,
		RepPoint:    segments[0].RepPoint(),
		NumSegments: len(segments),
		HighwayType: consensusHighwayType(segments),
		Tags:        consensusTags(segments),
	}
}

// consensusHighwayType returns the highway classification carried by
// the largest subset of segments. On a tie the value encountered first
// in segment order wins.
func consensusHighwayType(segments []*Segment) string {
	counts := make(map[string]int)
	best := ""
	for _, segment := range segments {
		counts[segment.HighwayType]++
		if best == "" || counts[segment.HighwayType] > counts[best] {
			best = segment.HighwayType
		}
	}
	return best
}

// consensusTags keeps every tag key supported by at least
// len(segments)/2 members (integer division: for n=3 a single carrier
// is enough), each with its most frequent value among the carriers.
func consensusTags(segments []*Segment) map[string]string {
	keyCounts := make(map[string]int)
	for _, segment := range segments {
		for key := range segment.Tags {
			keyCounts[key]++
		}
	}

	threshold := len(segments) / 2
	consensus := make(map[string]string)
	for key, count := range keyCounts {
		if count < threshold {
			continue
		}
		valueCounts := make(map[string]int)
		bestValue := ""
		seen := false
		for _, segment := range segments {
			value, ok := segment.Tags[key]
			if !ok {
				continue
			}
			valueCounts[value]++
			if !seen || valueCounts[value] > valueCounts[bestValue] {
				bestValue = value
				seen = true
			}
		}
		consensus[key] = bestValue
	}
	return consensus
}
