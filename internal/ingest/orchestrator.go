package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"routeplan/adapters/tabular"
	"routeplan/domain/core"
	"routeplan/domain/schema"
	"routeplan/internal"
)

// Pipeline drives the whole ingestion flow over one file: read, classify,
// match columns, parse each row independently, accumulate per-row errors.
// Read-level and classification-level failures short-circuit the file; no
// error ever escapes as a panic. The sequence generator is shared across
// every file the pipeline touches unless the caller resets it.
type Pipeline struct {
	seq *core.SequenceGenerator
	log *internal.Logger
	now func() time.Time
}

// NewPipeline creates an ingestion pipeline around the given ID sequence.
func NewPipeline(seq *core.SequenceGenerator) *Pipeline {
	return &Pipeline{
		seq: seq,
		log: internal.DefaultLogger.WithPrefix("Ingest"),
		now: time.Now,
	}
}

// ParseFile reads and parses one file from disk.
func (p *Pipeline) ParseFile(path string) schema.ParseResult {
	table, err := tabular.NewDataReader(path).Read()
	if err != nil {
		return p.fileError(err)
	}
	return p.ParseTable(table, filepath.Base(path))
}

// ParseUpload reads and parses file bytes, using the declared name for type
// detection and classification hints only.
func (p *Pipeline) ParseUpload(r io.Reader, fileName string) schema.ParseResult {
	table, err := tabular.ReadFrom(r, fileName)
	if err != nil {
		return p.fileError(err)
	}
	return p.ParseTable(table, fileName)
}

// ParseTable runs classification, column matching and row parsing over
// already-read tabular data. The returned result always accounts for every
// input row: records + row errors = rows - skipped empties.
func (p *Pipeline) ParseTable(table *tabular.Table, fileName string) schema.ParseResult {
	res := schema.ParseResult{
		BatchID: core.NewBatchID(),
		Type:    schema.DatasetUnknown,
	}

	if table.SkippedRows > 0 {
		res.SkippedRows = table.SkippedRows
		res.Errors = append(res.Errors, schema.ParseError{
			Message: fmt.Sprintf("%d empty row(s) were skipped", table.SkippedRows),
		})
	}

	if len(table.Rows) == 0 {
		res.Errors = append(res.Errors, schema.ParseError{Message: core.ErrNoData.Error()})
		return res
	}

	columns := table.Headers
	if len(columns) == 0 {
		for col := range table.Rows[0] {
			columns = append(columns, col)
		}
	}

	datasetType := Classify(columns, fileName)
	if datasetType == schema.DatasetUnknown {
		res.Errors = append(res.Errors, schema.ParseError{
			Message: "Unable to determine dataset type from file name or columns",
		})
		return res
	}
	res.Type = datasetType

	match := MatchColumns(columns, datasetType)
	if len(match) == 0 {
		res.Errors = append(res.Errors, schema.ParseError{
			Message: fmt.Sprintf("No recognizable columns for %s dataset", datasetType),
		})
		return res
	}

	fill := newDefaultFillerAt(p.seq, p.now)
	parser := newRowParser(datasetType, match, fill, p.log, p.now)
	for i, row := range table.Rows {
		parser.parseInto(&res, row, i+1)
	}

	p.log.Info("%s parsed as %s: %d record(s), %d row error(s), %d empty row(s) skipped",
		fileName, datasetType, res.RecordCount(), res.RowErrorCount(), res.SkippedRows)
	return res
}

func (p *Pipeline) fileError(err error) schema.ParseResult {
	p.log.Error("file read failed: %v", err)
	return schema.ParseResult{
		BatchID: core.NewBatchID(),
		Type:    schema.DatasetUnknown,
		Errors:  []schema.ParseError{{Message: err.Error()}},
	}
}
