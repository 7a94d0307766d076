package ingest

import (
	"strconv"
	"strings"
	"time"

	"routeplan/adapters/tabular"
	"routeplan/domain/core"
	"routeplan/domain/schema"
)

// DefaultDurationMins is the fallback service duration for jobs.
const DefaultDurationMins = 60

// Default windows. The job window is deliberately wide so a missing window
// does not spuriously exclude the job from all assignment; the salesman
// default is a conventional 9-hour shift.
const (
	defaultJobEntry      = "09:00:00"
	defaultJobExit       = "23:00:00"
	defaultSalesmanStart = "09:00:00"
	defaultSalesmanEnd   = "18:00:00"
	endOfDay             = "23:00:00"
)

// DefaultFiller synthesizes values for canonical fields with no matched
// column or an empty value. Defaults never overwrite a real value; they only
// fill gaps. ID defaults advance the shared sequence exactly once per
// default-needing row.
type DefaultFiller struct {
	seq *core.SequenceGenerator
	now func() time.Time
}

// NewDefaultFiller creates a filler backed by the given sequence generator.
func NewDefaultFiller(seq *core.SequenceGenerator) *DefaultFiller {
	return newDefaultFillerAt(seq, time.Now)
}

func newDefaultFillerAt(seq *core.SequenceGenerator, now func() time.Time) *DefaultFiller {
	return &DefaultFiller{seq: seq, now: now}
}

func (f *DefaultFiller) JobID() string      { return f.seq.NextJobID() }
func (f *DefaultFiller) SalesmanID() string { return f.seq.NextSalesmanID() }

// Date returns today's local date in canonical form.
func (f *DefaultFiller) Date() string {
	return f.now().Format(core.DateLayout)
}

func (f *DefaultFiller) JobEntryTime() string      { return f.Date() + " " + defaultJobEntry }
func (f *DefaultFiller) JobExitTime() string       { return f.Date() + " " + defaultJobExit }
func (f *DefaultFiller) SalesmanStartTime() string { return f.Date() + " " + defaultSalesmanStart }
func (f *DefaultFiller) SalesmanEndTime() string   { return f.Date() + " " + defaultSalesmanEnd }

// rawValue returns the trimmed cell for a matched field, reporting presence
// only when the column matched and the value is non-empty.
func rawValue(row tabular.Row, match schema.ColumnMatch, field schema.Field) (string, bool) {
	col, ok := match[field]
	if !ok {
		return "", false
	}
	v := strings.TrimSpace(row[col])
	return v, v != ""
}

// BuildLocation constructs the row's Location. Numerically valid coordinates
// take precedence, with any composed address attached as a supplementary
// label; otherwise the composed address stands alone. A row with neither is
// a parse failure, not a record with null fields.
func (f *DefaultFiller) BuildLocation(row tabular.Row, match schema.ColumnMatch) (schema.Location, error) {
	address := composeAddress(row, match)

	latRaw, latOK := rawValue(row, match, schema.FieldLatitude)
	lonRaw, lonOK := rawValue(row, match, schema.FieldLongitude)
	if latOK && lonOK {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr == nil && lonErr == nil {
			loc := schema.Location{Latitude: &lat, Longitude: &lon, Address: address}
			if loc.HasCoordinates() {
				return loc, nil
			}
		}
	}

	if address != "" {
		return schema.Location{Address: address}, nil
	}
	return schema.Location{}, core.ErrInvalidLocation
}

// composeAddress concatenates every matched, non-empty address component in
// fixed order (street/address, postcode, city, province, country).
func composeAddress(row tabular.Row, match schema.ColumnMatch) string {
	var parts []string
	for _, field := range schema.AddressComponentFields() {
		if v, ok := rawValue(row, match, field); ok {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
