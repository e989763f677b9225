package streetdf

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestStreetsToRows(t *testing.T) {
	rows := StreetsToRows(sampleStreets())
	if len(rows) != 5 {
		t.Fatalf("Rows number must be 5, but got %d", len(rows))
	}
	first := rows[0]
	if first.StreetName != "Main Street" || first.State != "test" {
		t.Errorf("First row must be Main Street in test, but got '%s' in '%s'", first.StreetName, first.State)
	}
	if first.Lat != 40.0 || first.Lon != -75.0 {
		t.Errorf("First row coordinates must be (40, -75), but got (%f, %f)", first.Lat, first.Lon)
	}
	if first.NumSegments != 3 {
		t.Errorf("First row segments number must be 3, but got %d", first.NumSegments)
	}
}

func TestWriteParquetRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test_streets.parquet")
	streets := sampleStreets()
	if err := WriteParquet(filename, streets); err != nil {
		t.Fatal(err)
	}
	rows, err := parquet.ReadFile[StreetRow](filename)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(streets) {
		t.Fatalf("Read back %d rows, but %d were written", len(rows), len(streets))
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.StreetName)
	}
	sort.Strings(names)
	expected := []string{"Elm Street", "Main Street", "Main Street", "Main Street", "Oak Avenue"}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Row name %d must be '%s', but got '%s'", i, expected[i], names[i])
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	base := t.TempDir()
	inputPath := filepath.Join(base, "data", "osm", "delaware-latest.osm.pbf")
	outputPath, err := DefaultOutputPath(inputPath, "delaware")
	if err != nil {
		t.Fatal(err)
	}
	expected := filepath.Join(base, "data", "streetdfs", "delaware_streets.parquet")
	if outputPath != expected {
		t.Errorf("Output path must be '%s', but got '%s'", expected, outputPath)
	}
	info, err := os.Stat(filepath.Dir(outputPath))
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Errorf("Output directory '%s' must be created", filepath.Dir(outputPath))
	}
}
