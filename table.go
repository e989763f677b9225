package streetdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

// StreetRow is one row of the persisted street table. Consensus tags
// are computed during grouping but not persisted.
type StreetRow struct {
	StreetName  string  `parquet:"street_name"`
	State       string  `parquet:"state"`
	Lat         float64 `parquet:"lat"`
	Lon         float64 `parquet:"lon"`
	NumSegments uint32  `parquet:"num_segments"`
	HighwayType string  `parquet:"highway_type"`
}

// StreetsToRows assembles output rows from streets, keeping slice order
func StreetsToRows(streets []*Street) []StreetRow {
	rows := make([]StreetRow, 0, len(streets))
	for _, street := range streets {
		rows = append(rows, StreetRow{
			StreetName:  street.Name,
			State:       street.Region,
			Lat:         street.RepPoint.Lat,
			Lon:         street.RepPoint.Lon,
			NumSegments: uint32(street.NumSegments),
			HighwayType: street.HighwayType,
		})
	}
	return rows
}

// WriteParquet persists streets as a parquet file. Row order is
// whatever order the slice carries, which is unspecified for a
// concurrent run.
func WriteParquet(filename string, streets []*Street) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Can't create file '%s'", filename)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[StreetRow](file)
	if _, err := writer.Write(StreetsToRows(streets)); err != nil {
		return errors.Wrap(err, "Can't write parquet rows")
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "Can't finish parquet file")
	}
	return nil
}

// DefaultOutputPath derives the output location from the input path:
// a 'streetdfs' directory next to the input's parent, created if
// absent, holding '<region>_streets.parquet'.
func DefaultOutputPath(inputPath, region string) (string, error) {
	dir := filepath.Join(filepath.Dir(filepath.Dir(inputPath)), "streetdfs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "Can't create output directory '%s'", dir)
	}
	return filepath.Join(dir, fmt.Sprintf("%s_streets.parquet", region)), nil
}
