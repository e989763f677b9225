package streetdf

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/paulmach/osm"
)

// Five resolvable nodes; node 99 is referenced but never appears in the
// stream, node 98 is referenced by one way alongside a resolvable node.
// Nodes 4 and 5 lie about 5 km south of the rest.
const sampleOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
 <node id="1" lat="40.0000" lon="-75.0000"/>
 <node id="2" lat="40.0010" lon="-75.0000"/>
 <node id="3" lat="40.0020" lon="-75.0000"/>
 <node id="4" lat="39.9550" lon="-75.0000"/>
 <node id="5" lat="39.9560" lon="-75.0000"/>
 <way id="10">
  <nd ref="1"/>
  <nd ref="2"/>
  <tag k="name" v="Main Street"/>
  <tag k="highway" v="residential"/>
  <tag k="lanes" v="2"/>
 </way>
 <way id="11">
  <nd ref="2"/>
  <nd ref="3"/>
  <tag k="name" v="Main Street"/>
  <tag k="highway" v="residential"/>
  <tag k="lanes" v="2"/>
 </way>
 <way id="12">
  <nd ref="4"/>
  <nd ref="5"/>
  <tag k="name" v="Main Street"/>
  <tag k="highway" v="service"/>
 </way>
 <way id="13">
  <nd ref="1"/>
  <nd ref="3"/>
  <tag k="highway" v="footway"/>
 </way>
 <way id="14">
  <nd ref="99"/>
  <tag k="name" v="Ghost Street"/>
  <tag k="highway" v="residential"/>
 </way>
 <way id="16">
  <nd ref="3"/>
  <nd ref="98"/>
  <tag k="name" v="Main Street"/>
  <tag k="highway" v="residential"/>
 </way>
 <way id="17">
  <nd ref="4"/>
  <nd ref="5"/>
  <tag k="name" v="Elm Street"/>
  <tag k="highway" v="tertiary"/>
 </way>
</osm>`

func sampleScanner(t *testing.T) OSMScanner {
	t.Helper()
	scanner, err := newScanner(strings.NewReader(sampleOSM), "sample.osm")
	if err != nil {
		t.Fatal(err)
	}
	return scanner
}

func TestCollectHighwayNodes(t *testing.T) {
	scanner := sampleScanner(t)
	defer scanner.Close()
	highwayNodes, waysNum, err := collectHighwayNodes(scanner)
	if err != nil {
		t.Fatal(err)
	}
	// Ways 10, 11, 12, 14, 16, 17 carry both tags; way 13 has no name
	if waysNum != 6 {
		t.Errorf("Named highways number must be 6, but got %d", waysNum)
	}
	expected := []osm.NodeID{1, 2, 3, 4, 5, 98, 99}
	if len(highwayNodes) != len(expected) {
		t.Errorf("Filter set size must be %d, but got %d", len(expected), len(highwayNodes))
	}
	for _, id := range expected {
		if _, ok := highwayNodes[id]; !ok {
			t.Errorf("Node %d must be present in the filter set", id)
		}
	}
}

func TestLoadCoordinates(t *testing.T) {
	filterScanner := sampleScanner(t)
	highwayNodes, _, err := collectHighwayNodes(filterScanner)
	filterScanner.Close()
	if err != nil {
		t.Fatal(err)
	}

	scanner := sampleScanner(t)
	defer scanner.Close()
	coords, nodesNum, matchedNum, err := loadCoordinates(scanner, highwayNodes, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if nodesNum != 5 {
		t.Errorf("Scanned nodes number must be 5, but got %d", nodesNum)
	}
	if matchedNum != 5 {
		t.Errorf("Matched nodes number must be 5, but got %d", matchedNum)
	}
	pt, ok := coords[osm.NodeID(2)]
	if !ok {
		t.Fatal("Coordinates for node 2 must be loaded")
	}
	if pt.Lat != 40.0010 || pt.Lon != -75.0 {
		t.Errorf("Node 2 must resolve to (40.001, -75), but got %v", pt)
	}
	if _, ok := coords[osm.NodeID(99)]; ok {
		t.Error("Node 99 is absent from the stream and must not resolve")
	}
}

func TestExtractSegments(t *testing.T) {
	filterScanner := sampleScanner(t)
	highwayNodes, _, err := collectHighwayNodes(filterScanner)
	filterScanner.Close()
	if err != nil {
		t.Fatal(err)
	}
	coordsScanner := sampleScanner(t)
	coords, _, _, err := loadCoordinates(coordsScanner, highwayNodes, 1, defaultBatchSize)
	coordsScanner.Close()
	if err != nil {
		t.Fatal(err)
	}

	scanner := sampleScanner(t)
	defer scanner.Close()
	segments, err := extractSegments(scanner, coords, "test")
	if err != nil {
		t.Fatal(err)
	}
	// Way 13 lacks a name, way 14 resolves to zero coordinates
	if len(segments) != 5 {
		t.Fatalf("Segments number must be 5, but got %d", len(segments))
	}
	for _, segment := range segments {
		if segment.Name == "" || segment.HighwayType == "" {
			t.Errorf("Segment %d must carry name and highway type", segment.WayID)
		}
		if len(segment.Coords) == 0 {
			t.Errorf("Segment %d must carry at least one coordinate", segment.WayID)
		}
		if len(segment.Coords) > len(segment.NodeIDs) {
			t.Errorf("Segment %d must not have more coordinates than node references", segment.WayID)
		}
		if segment.Region != "test" {
			t.Errorf("Segment %d region must be 'test', but got '%s'", segment.WayID, segment.Region)
		}
	}
	// Way 16 keeps the unresolvable reference in NodeIDs only
	for _, segment := range segments {
		if segment.WayID != osm.WayID(16) {
			continue
		}
		if len(segment.NodeIDs) != 2 {
			t.Errorf("Way 16 must keep 2 node references, but got %d", len(segment.NodeIDs))
		}
		if len(segment.Coords) != 1 {
			t.Errorf("Way 16 must resolve exactly 1 coordinate, but got %d", len(segment.Coords))
		}
	}
}

func TestProcessorRun(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sample.osm")
	if err := os.WriteFile(filename, []byte(sampleOSM), 0644); err != nil {
		t.Fatal(err)
	}

	processor := NewProcessor(
		WithFilename(filename),
		WithRegion("test"),
		WithDistanceThreshold(0.2),
		WithWorkersNum(2),
		WithBatchSize(2),
	)
	t.Log(processor)
	streets, err := processor.Run()
	if err != nil {
		t.Fatal(err)
	}

	// Main Street: ways 10, 11, 16 share nodes 2 and 3; way 12 sits
	// 5 km away and stays apart at 200 m. Elm Street: way 17.
	if len(streets) != 3 {
		t.Fatalf("Streets number must be 3, but got %d", len(streets))
	}
	sort.Slice(streets, func(i, j int) bool {
		if streets[i].Name != streets[j].Name {
			return streets[i].Name < streets[j].Name
		}
		return streets[i].NumSegments > streets[j].NumSegments
	})
	if streets[0].Name != "Elm Street" || streets[0].NumSegments != 1 {
		t.Errorf("First street must be Elm Street with 1 segment, but got '%s' with %d", streets[0].Name, streets[0].NumSegments)
	}
	if streets[1].Name != "Main Street" || streets[1].NumSegments != 3 {
		t.Errorf("Second street must be Main Street with 3 segments, but got '%s' with %d", streets[1].Name, streets[1].NumSegments)
	}
	if streets[2].Name != "Main Street" || streets[2].NumSegments != 1 {
		t.Errorf("Third street must be Main Street with 1 segment, but got '%s' with %d", streets[2].Name, streets[2].NumSegments)
	}
	if streets[1].HighwayType != "residential" {
		t.Errorf("Merged Main Street highway type must be 'residential', but got '%s'", streets[1].HighwayType)
	}
	if streets[2].HighwayType != "service" {
		t.Errorf("Detached Main Street highway type must be 'service', but got '%s'", streets[2].HighwayType)
	}
}

func TestProcessorRunWideThreshold(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sample.osm")
	if err := os.WriteFile(filename, []byte(sampleOSM), 0644); err != nil {
		t.Fatal(err)
	}

	processor := NewProcessor(
		WithFilename(filename),
		WithRegion("test"),
		WithDistanceThreshold(10),
	)
	streets, err := processor.Run()
	if err != nil {
		t.Fatal(err)
	}
	// 10 km fuses both Main Street components
	byName := make(map[string]int)
	for _, street := range streets {
		byName[street.Name]++
	}
	if byName["Main Street"] != 1 {
		t.Errorf("Main Street must collapse into 1 street at 10 km, but got %d", byName["Main Street"])
	}
	for _, street := range streets {
		if street.Name == "Main Street" && street.NumSegments != 4 {
			t.Errorf("Main Street must count 4 segments at 10 km, but got %d", street.NumSegments)
		}
	}
}

func TestProcessorRunMissingFile(t *testing.T) {
	processor := NewProcessor(
		WithFilename(filepath.Join(t.TempDir(), "nope.osm")),
		WithRegion("test"),
	)
	if _, err := processor.Run(); err == nil {
		t.Error("Run over a missing file must fail")
	}
}

func TestProcessorRunUnknownExtension(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sample.json")
	if err := os.WriteFile(filename, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	processor := NewProcessor(
		WithFilename(filename),
		WithRegion("test"),
	)
	if _, err := processor.Run(); err == nil {
		t.Error("Run over an unhandled extension must fail")
	}
}
