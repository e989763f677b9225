package streetdf

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultDistanceThreshold is the spatial merge threshold in
	// kilometers applied when the caller does not set one (200 meters).
	DefaultDistanceThreshold = 0.2

	defaultBatchSize = 8192
)

// Processor extracts deduplicated named streets for a single region
// from an OSM extract.
type Processor struct {
	filename          string
	region            string
	distanceThreshold float64
	workersNum        int
	batchSize         int
	verbose           bool
}

func (processor *Processor) String() string {
	return fmt.Sprintf(`
Street processor parameters:
	filename: '%s'
	region: '%s'
	distance_threshold_km: %f
	workers_num: %d
	batch_size: %d
	`,
		processor.filename,
		processor.region,
		processor.distanceThreshold,
		processor.workersNum,
		processor.batchSize,
	)
}

func NewProcessor(options ...func(*Processor)) *Processor {
	processor := &Processor{
		distanceThreshold: DefaultDistanceThreshold,
		workersNum:        runtime.NumCPU(),
		batchSize:         defaultBatchSize,
	}
	for _, option := range options {
		option(processor)
	}
	return processor
}

func WithFilename(filename string) func(*Processor) {
	return func(processor *Processor) {
		processor.filename = filename
	}
}

func WithRegion(region string) func(*Processor) {
	return func(processor *Processor) {
		processor.region = region
	}
}

// WithDistanceThreshold sets the spatial merge threshold in kilometers.
// Zero disables spatial merging entirely.
func WithDistanceThreshold(distanceThresholdKm float64) func(*Processor) {
	return func(processor *Processor) {
		processor.distanceThreshold = distanceThresholdKm
	}
}

func WithWorkersNum(workersNum int) func(*Processor) {
	return func(processor *Processor) {
		processor.workersNum = workersNum
	}
}

func WithBatchSize(batchSize int) func(*Processor) {
	return func(processor *Processor) {
		processor.batchSize = batchSize
	}
}

func WithVerbose(verbose bool) func(*Processor) {
	return func(processor *Processor) {
		processor.verbose = verbose
	}
}

// Run executes the three scanning passes over the input stream and
// groups the extracted segments into streets. Any I/O failure on any
// pass aborts the whole run; there is no partial output.
func (processor *Processor) Run() ([]*Street, error) {
	if processor.filename == "" {
		return nil, fmt.Errorf("No filename has been provided")
	}
	if processor.region == "" {
		return nil, fmt.Errorf("No region has been provided")
	}

	file, err := os.Open(processor.filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open file '%s'", processor.filename)
	}
	defer file.Close()

	/* Pass 1: nodes referenced by named highways */
	if processor.verbose {
		fmt.Printf("Pass 1: Identifying nodes used by named highways... ")
	}
	st := time.Now()
	scanner, err := newScanner(file, processor.filename)
	if err != nil {
		return nil, err
	}
	highwayNodes, waysNum, err := collectHighwayNodes(scanner)
	scanner.Close()
	if err != nil {
		return nil, errors.Wrap(err, "Can't collect highway nodes")
	}
	if processor.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
		fmt.Printf("\tFound %d named highways using %d nodes\n", waysNum, len(highwayNodes))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Pass 2: node coordinates (concurrent) */
	if processor.verbose {
		fmt.Printf("Pass 2: Loading node coordinates... ")
	}
	st = time.Now()
	scanner, err = newScanner(file, processor.filename)
	if err != nil {
		return nil, err
	}
	coords, nodesNum, matchedNum, err := loadCoordinates(scanner, highwayNodes, processor.workersNum, processor.batchSize)
	scanner.Close()
	if err != nil {
		return nil, errors.Wrap(err, "Can't load node coordinates")
	}
	if processor.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
		fmt.Printf("\tScanned %d nodes, matched %d highway nodes, loaded %d coordinates\n", nodesNum, matchedNum, len(coords))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after nodes scanning")
	}

	/* Pass 3: street segments */
	if processor.verbose {
		fmt.Printf("Pass 3: Extracting street segments... ")
	}
	st = time.Now()
	scanner, err = newScanner(file, processor.filename)
	if err != nil {
		return nil, err
	}
	segments, err := extractSegments(scanner, coords, processor.region)
	scanner.Close()
	if err != nil {
		return nil, errors.Wrap(err, "Can't extract street segments")
	}
	if processor.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
		fmt.Printf("\tFound %d street segments\n", len(segments))
	}

	/* Grouping */
	streets := processor.buildStreets(segments)
	if processor.verbose {
		fmt.Printf("\tCreated %d unique streets\n", len(streets))
	}
	return streets, nil
}
