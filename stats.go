package streetdf

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NameCount is one entry of the street-name frequency listing
type NameCount struct {
	Name  string
	Count int
}

// Summary holds the diagnostic totals reported after a run
type Summary struct {
	TotalStreets     int
	MultiSegmentNum  int
	TopNames         []NameCount
	UniqueStreetName int
}

// StreetsDataFrame builds the columnar view of streets used for
// summary statistics
func StreetsDataFrame(streets []*Street) dataframe.DataFrame {
	names := make([]string, 0, len(streets))
	states := make([]string, 0, len(streets))
	lats := make([]float64, 0, len(streets))
	lons := make([]float64, 0, len(streets))
	segmentsNum := make([]int, 0, len(streets))
	highwayTypes := make([]string, 0, len(streets))
	for _, street := range streets {
		names = append(names, street.Name)
		states = append(states, street.Region)
		lats = append(lats, street.RepPoint.Lat)
		lons = append(lons, street.RepPoint.Lon)
		segmentsNum = append(segmentsNum, street.NumSegments)
		highwayTypes = append(highwayTypes, street.HighwayType)
	}
	return dataframe.New(
		series.New(names, series.String, "street_name"),
		series.New(states, series.String, "state"),
		series.New(lats, series.Float, "lat"),
		series.New(lons, series.Float, "lon"),
		series.New(segmentsNum, series.Int, "num_segments"),
		series.New(highwayTypes, series.String, "highway_type"),
	)
}

// Summarize computes the after-run diagnostics: total street count,
// count of streets spanning more than one segment, and the top
// street names by frequency descending (at most topNum entries).
func Summarize(streets []*Street, topNum int) Summary {
	summary := Summary{TotalStreets: len(streets)}
	if len(streets) == 0 {
		return summary
	}

	df := StreetsDataFrame(streets)
	multi := df.Filter(dataframe.F{
		Colname:    "num_segments",
		Comparator: series.Greater,
		Comparando: 1,
	})
	summary.MultiSegmentNum = multi.Nrow()

	counts := df.GroupBy("street_name").
		Aggregation([]dataframe.AggregationType{dataframe.Aggregation_COUNT}, []string{"num_segments"})
	summary.UniqueStreetName = counts.Nrow()
	sorted := counts.Arrange(dataframe.RevSort("num_segments_COUNT"))

	limit := topNum
	if sorted.Nrow() < limit {
		limit = sorted.Nrow()
	}
	nameCol := sorted.Col("street_name")
	countCol := sorted.Col("num_segments_COUNT")
	for i := 0; i < limit; i++ {
		summary.TopNames = append(summary.TopNames, NameCount{
			Name:  nameCol.Elem(i).String(),
			Count: int(countCol.Elem(i).Float()),
		})
	}
	return summary
}
