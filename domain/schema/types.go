package schema

import (
	"math"

	"routeplan/domain/core"
)

// DatasetType is the classified kind of a tabular file.
type DatasetType string

const (
	DatasetJob      DatasetType = "job"
	DatasetSalesman DatasetType = "salesman"
	DatasetUnknown  DatasetType = "unknown"
)

// Field is a canonical schema field name, independent of how it is spelled in
// any particular source file.
type Field string

const (
	FieldJobID        Field = "job_id"
	FieldDate         Field = "date"
	FieldLatitude     Field = "latitude"
	FieldLongitude    Field = "longitude"
	FieldAddress      Field = "address"
	FieldPostcode     Field = "postcode"
	FieldCity         Field = "city"
	FieldProvince     Field = "province"
	FieldCountry      Field = "country"
	FieldDurationMins Field = "duration_mins"
	FieldEntryTime    Field = "entry_time"
	FieldExitTime     Field = "exit_time"
	FieldClientName   Field = "client_name"
	FieldDescription  Field = "description"

	FieldSalesmanID   Field = "salesman_id"
	FieldSalesmanName Field = "salesman_name"
	FieldStartTime    Field = "start_time"
	FieldEndTime      Field = "end_time"
)

// Location is either a pair of valid coordinates (address optional label) or
// a bare address. A Location satisfying neither is a parse failure, not a
// record with null fields.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// HasCoordinates reports whether both coordinates are present and finite.
func (l Location) HasCoordinates() bool {
	if l.Latitude == nil || l.Longitude == nil {
		return false
	}
	return !math.IsNaN(*l.Latitude) && !math.IsInf(*l.Latitude, 0) &&
		!math.IsNaN(*l.Longitude) && !math.IsInf(*l.Longitude, 0)
}

// Valid reports whether the Location invariant holds.
func (l Location) Valid() bool {
	return l.HasCoordinates() || l.Address != ""
}

// Job is one task with a time window and a location. EntryTime and ExitTime
// are canonical date-times sharing the job's Date.
type Job struct {
	JobID        string   `json:"job_id" db:"job_id"`
	Date         string   `json:"date" db:"date"`
	Location     Location `json:"location"`
	DurationMins int      `json:"duration_mins" db:"duration_mins"`
	EntryTime    string   `json:"entry_time" db:"entry_time"`
	ExitTime     string   `json:"exit_time" db:"exit_time"`
	ClientName   string   `json:"client_name,omitempty" db:"client_name"`
	Description  string   `json:"description,omitempty" db:"description"`
}

// Salesman is one worker with a shift window and a location.
type Salesman struct {
	SalesmanID   string   `json:"salesman_id" db:"salesman_id"`
	Location     Location `json:"location"`
	StartTime    string   `json:"start_time" db:"start_time"`
	EndTime      string   `json:"end_time" db:"end_time"`
	SalesmanName string   `json:"salesman_name,omitempty" db:"salesman_name"`
}

// ColumnMatch maps canonical field names to the literal source column present
// in one specific file. Built once per file, reused for every row.
type ColumnMatch map[Field]string

// ParseError is one accumulated failure. Row-scoped errors carry the 1-based
// data-row number; file-scoped errors leave Row at zero.
type ParseError struct {
	Row     int    `json:"row,omitempty"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// ParseResult is the outcome of one file-parse invocation. Exactly one of
// Jobs/Salesmen is populated, according to Type.
type ParseResult struct {
	BatchID     core.BatchID `json:"batch_id"`
	Type        DatasetType  `json:"type"`
	Jobs        []Job        `json:"jobs,omitempty"`
	Salesmen    []Salesman   `json:"salesmen,omitempty"`
	SkippedRows int          `json:"skipped_rows"`
	Errors      []ParseError `json:"errors"`
}

// RecordCount returns the number of successfully parsed records.
func (r ParseResult) RecordCount() int {
	return len(r.Jobs) + len(r.Salesmen)
}

// RowErrorCount returns the number of row-scoped errors in the ledger.
func (r ParseResult) RowErrorCount() int {
	n := 0
	for _, e := range r.Errors {
		if e.Row > 0 {
			n++
		}
	}
	return n
}
