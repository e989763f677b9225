package streetdf

import (
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt GeoPoint) string {
	b, err := geojson.NewPointGeometry([]float64{pt.Lon, pt.Lat}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// StreetsToGeoJSON returns a FeatureCollection of street representative
// points with their table attributes as properties
func StreetsToGeoJSON(streets []*Street) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, street := range streets {
		feature := geojson.NewPointFeature([]float64{street.RepPoint.Lon, street.RepPoint.Lat})
		feature.SetProperty("street_name", street.Name)
		feature.SetProperty("state", street.Region)
		feature.SetProperty("num_segments", street.NumSegments)
		feature.SetProperty("highway_type", street.HighwayType)
		fc.AddFeature(feature)
	}
	return fc
}

// WriteGeoJSON dumps streets as a GeoJSON FeatureCollection file
func WriteGeoJSON(filename string, streets []*Street) error {
	b, err := StreetsToGeoJSON(streets).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal streets to geojson")
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return errors.Wrapf(err, "Can't write file '%s'", filename)
	}
	return nil
}
