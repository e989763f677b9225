package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/streetdf/streetdf"
)

var (
	out         = flag.String("out", "", "Explicit output path for the parquet table. Default: <grandparent-of-input>/streetdfs/<region>_streets.parquet")
	geojsonOut  = flag.String("geojson", "", "Optional path for a GeoJSON dump of street representative points")
	wktOut      = flag.String("wkt", "", "Optional path for a 'Comma-Separated Values' (CSV) dump of streets with WKT geometry")
	workersNum  = flag.Int("workers", 0, "Number of workers for concurrent phases (default: number of CPUs)")
	quietOutput = flag.Bool("quiet", false, "Suppress progress output")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <region> [inputPath] [distanceThresholdKm]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Example: %s delaware\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Example: %s california ./data/osm/california-latest.osm.pbf 0.1\n", os.Args[0])
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	region := strings.ToLower(args[0])

	inputPath := filepath.Join(".", "data", "osm", fmt.Sprintf("%s-latest.osm.pbf", region))
	if len(args) > 1 {
		inputPath = args[1]
	}

	distanceThresholdKm := streetdf.DefaultDistanceThreshold
	if len(args) > 2 {
		parsed, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			fatal(errors.Wrapf(err, "Invalid distance threshold '%s'", args[2]))
		}
		distanceThresholdKm = parsed
	}

	if _, err := os.Stat(inputPath); err != nil {
		fatal(fmt.Errorf("File not found: %s", inputPath))
	}

	verbose := !*quietOutput
	banner := strings.Repeat("=", 70)
	if verbose {
		fmt.Println(banner)
		fmt.Println("OSM TO PARQUET STREET PROCESSOR")
		fmt.Println(banner)
		fmt.Printf("Input file:  %s\n", inputPath)
		fmt.Printf("Region:      %s\n", region)
		fmt.Printf("Distance threshold: %g km\n", distanceThresholdKm)
		fmt.Println(banner)
	}

	options := []func(*streetdf.Processor){
		streetdf.WithFilename(inputPath),
		streetdf.WithRegion(region),
		streetdf.WithDistanceThreshold(distanceThresholdKm),
		streetdf.WithVerbose(verbose),
	}
	if *workersNum > 0 {
		options = append(options, streetdf.WithWorkersNum(*workersNum))
	}

	streets, err := streetdf.NewProcessor(options...).Run()
	if err != nil {
		fatal(err)
	}

	summary := streetdf.Summarize(streets, 10)
	if verbose {
		fmt.Println(banner)
		fmt.Println("SUMMARY STATISTICS")
		fmt.Println(banner)
		fmt.Printf("Total unique streets: %d\n", summary.TotalStreets)
		fmt.Printf("Streets with multiple segments: %d\n", summary.MultiSegmentNum)
		fmt.Println("\nTop 10 street names:")
		for _, entry := range summary.TopNames {
			fmt.Printf("\t%-40s %d\n", entry.Name, entry.Count)
		}
	}

	outputPath := *out
	if outputPath == "" {
		outputPath, err = streetdf.DefaultOutputPath(inputPath, region)
		if err != nil {
			fatal(err)
		}
	}
	if verbose {
		fmt.Printf("\nSaving to: %s\n", outputPath)
	}
	if err := streetdf.WriteParquet(outputPath, streets); err != nil {
		fatal(err)
	}

	if *geojsonOut != "" {
		if err := streetdf.WriteGeoJSON(*geojsonOut, streets); err != nil {
			fatal(err)
		}
	}
	if *wktOut != "" {
		if err := writeWKTCSV(*wktOut, streets); err != nil {
			fatal(err)
		}
	}

	if verbose {
		fmt.Println("Done!")
		fmt.Println(banner)
	}
}

func writeWKTCSV(filename string, streets []*streetdf.Street) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Can't create file '%s'", filename)
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'
	err = writer.Write([]string{"street_name", "state", "num_segments", "highway_type", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write CSV header")
	}
	for _, street := range streets {
		err = writer.Write([]string{
			street.Name,
			street.Region,
			fmt.Sprintf("%d", street.NumSegments),
			street.HighwayType,
			streetdf.PrepareWKTPoint(street.RepPoint),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write CSV row")
		}
	}
	return nil
}
