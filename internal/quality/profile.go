package quality

import (
	"github.com/montanaflynn/stats"

	"routeplan/domain/schema"
)

// BatchProfile summarizes data quality of one parsed batch: how much of the
// file survived parsing, how service durations are distributed, and how many
// records carry real coordinates versus bare addresses.
type BatchProfile struct {
	Type               schema.DatasetType `json:"type"`
	Records            int                `json:"records"`
	RowErrors          int                `json:"row_errors"`
	SkippedRows        int                `json:"skipped_rows"`
	GeocodedRatio      float64            `json:"geocoded_ratio"`
	MeanDurationMins   float64            `json:"mean_duration_mins,omitempty"`
	MedianDurationMins float64            `json:"median_duration_mins,omitempty"`
	MaxDurationMins    float64            `json:"max_duration_mins,omitempty"`
}

// Profile computes the batch profile for a parse result.
func Profile(res schema.ParseResult) BatchProfile {
	p := BatchProfile{
		Type:        res.Type,
		Records:     res.RecordCount(),
		RowErrors:   res.RowErrorCount(),
		SkippedRows: res.SkippedRows,
	}

	geocoded := 0
	var durations stats.Float64Data
	for _, job := range res.Jobs {
		if job.Location.HasCoordinates() {
			geocoded++
		}
		durations = append(durations, float64(job.DurationMins))
	}
	for _, s := range res.Salesmen {
		if s.Location.HasCoordinates() {
			geocoded++
		}
	}

	if p.Records > 0 {
		p.GeocodedRatio = float64(geocoded) / float64(p.Records)
	}
	if len(durations) > 0 {
		// stats errors only on empty input, which is excluded here.
		p.MeanDurationMins, _ = stats.Mean(durations)
		p.MedianDurationMins, _ = stats.Median(durations)
		p.MaxDurationMins, _ = stats.Max(durations)
	}

	return p
}
