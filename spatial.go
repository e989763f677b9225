package streetdf

// componentPoints flattens the coordinates of every member segment of a
// component into a single point set
func componentPoints(segments []*Segment, component []int) []GeoPoint {
	points := []GeoPoint{}
	for _, idx := range component {
		points = append(points, segments[idx].Coords...)
	}
	return points
}

// mergeNearbyComponents fuses components whose minimum planar distance
// to one another is strictly below the threshold. The check runs over
// the full coordinate cross product of every unordered component pair;
// the quadratic cost is accepted because per-name groups are small.
// Merged components keep segment indices in flood-fill visitation
// order.
func mergeNearbyComponents(segments []*Segment, components [][]int, distanceThresholdKm float64) [][]int {
	m := len(components)
	if m <= 1 {
		return components
	}

	points := make([][]GeoPoint, m)
	for i := range components {
		points[i] = componentPoints(segments, components[i])
	}

	adjacency := make([][]int, m)
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			if minPlanarDistance(points[i], points[j]) < distanceThresholdKm {
				adjacency[i] = append(adjacency[i], j)
				adjacency[j] = append(adjacency[j], i)
			}
		}
	}

	visited := make([]bool, m)
	merged := [][]int{}
	for start := 0; start < m; start++ {
		if visited[start] {
			continue
		}
		component := []int{}
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, components[current]...)
			for _, neighbor := range adjacency[current] {
				if !visited[neighbor] {
					visited[neighbor] = true
					stack = append(stack, neighbor)
				}
			}
		}
		merged = append(merged, component)
	}
	return merged
}
