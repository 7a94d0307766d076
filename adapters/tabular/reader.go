package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"routeplan/domain/core"
	"routeplan/internal"

	"github.com/xuri/excelize/v2"
)

var logger = internal.DefaultLogger.WithPrefix("DataReader")

// DataReader handles reading Excel and CSV files into flat row records.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader for the given path. The file type
// is decided by extension; unsupported extensions surface on Read.
func NewDataReader(filePath string) *DataReader {
	return &DataReader{filePath: filePath, fileType: fileTypeFor(filePath)}
}

func fileTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "csv"
	case ".xlsx", ".xlsm":
		return "xlsx"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	}
}

// Read reads the file into a Table. Fully-empty rows are dropped and counted,
// not errored row by row.
func (r *DataReader) Read() (*Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return readFrom(f, r.fileType)
}

// ReadFrom reads CSV or Excel bytes from an arbitrary reader, using the
// declared file name only for type detection. Used by upload handlers that
// never touch the filesystem.
func ReadFrom(rd io.Reader, fileName string) (*Table, error) {
	return readFrom(rd, fileTypeFor(fileName))
}

func readFrom(rd io.Reader, fileType string) (*Table, error) {
	switch fileType {
	case "csv":
		return readCSV(rd)
	case "xlsx":
		return readExcel(rd)
	default:
		return nil, fmt.Errorf("%w: .%s", core.ErrUnsupportedFile, fileType)
	}
}

func readCSV(rd io.Reader) (*Table, error) {
	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}

	table := processRows(rows)
	logger.Info("CSV file processed (%d data rows, %d empty rows skipped)", len(table.Rows), table.SkippedRows)
	return table, nil
}

func readExcel(rd io.Reader) (*Table, error) {
	raw, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel bytes: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// First sheet in the workbook; localized Excel names the default sheet
	// "Hoja1", so "Sheet1" cannot be assumed.
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	table := processRows(rows)
	logger.Info("Excel sheet %q processed (%d data rows, %d empty rows skipped)", sheets[0], len(table.Rows), table.SkippedRows)
	return table, nil
}

// processRows converts raw string rows into the Table format, taking headers
// verbatim from the first row and dropping fully-empty data rows.
func processRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	table := &Table{Headers: headers}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			table.SkippedRows++
			continue
		}

		rowData := make(Row, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		table.Rows = append(table.Rows, rowData)
	}

	return table
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
