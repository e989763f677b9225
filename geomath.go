package streetdf

import (
	"fmt"
	"math"
)

const (
	// Rough length of one degree of arc on Earth in kilometers. The
	// planar equirectangular approximation built on it is intentional:
	// spatial merging compares distances of a few hundred meters.
	kmPerDegree = 111.0
)

// GeoPoint representation of point on Earth
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String returns pretty printed value for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

// planarDistance returns approximate distance between two geo-points
// (kilometers), treating degrees as planar coordinates
func planarDistance(p, q GeoPoint) float64 {
	diffLat := q.Lat - p.Lat
	diffLon := q.Lon - p.Lon
	return math.Sqrt(diffLat*diffLat+diffLon*diffLon) * kmPerDegree
}

// minPlanarDistance returns the smallest planar distance between any
// point of the first set and any point of the second
func minPlanarDistance(a, b []GeoPoint) float64 {
	minDist := math.Inf(1)
	for i := range a {
		for j := range b {
			if d := planarDistance(a[i], b[j]); d < minDist {
				minDist = d
			}
		}
	}
	return minDist
}
