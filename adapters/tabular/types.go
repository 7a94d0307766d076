package tabular

// Row represents a single row of raw data as column name -> cell value.
// Headers are kept verbatim (trimmed only); normalization belongs to the
// column matcher downstream.
type Row map[string]string

// Table holds raw tabular data read from a CSV or Excel file.
type Table struct {
	Headers     []string
	Rows        []Row
	SkippedRows int // fully-empty source rows dropped during reading
}
