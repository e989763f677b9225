package streetdf

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

// OSMScanner is the element stream reader consumed by the three
// extraction passes. Both osmpbf.Scanner and osmxml.Scanner satisfy it.
type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// newScanner prepares a scanner for one full pass over the stream,
// guessing the format from the file extension
func newScanner(reader io.Reader, filename string) (OSMScanner, error) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(context.Background(), reader), nil
	case ".pbf", ".osm.pbf":
		return osmpbf.New(context.Background(), reader, runtime.NumCPU()), nil
	}
	return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
}
