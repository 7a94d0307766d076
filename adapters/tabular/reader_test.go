package tabular

import (
	"errors"
	"strings"
	"testing"

	"routeplan/domain/core"
)

func TestReadFromCSV(t *testing.T) {
	csvData := "job_id,date,address\n1,2025-02-05,Calle Mayor 1\n2,2025-02-06,Gran Via 20\n"

	table, err := ReadFrom(strings.NewReader(csvData), "jobs.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0]["address"] != "Calle Mayor 1" {
		t.Errorf("row 0 address = %q", table.Rows[0]["address"])
	}
}

func TestReadFromSkipsEmptyRows(t *testing.T) {
	csvData := "job_id,address\n1,Calle Mayor 1\n,\n  ,  \n2,Gran Via 20\n"

	table, err := ReadFrom(strings.NewReader(csvData), "jobs.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(table.Rows))
	}
	if table.SkippedRows != 2 {
		t.Errorf("skipped = %d, want 2", table.SkippedRows)
	}
}

func TestReadFromRaggedRows(t *testing.T) {
	csvData := "a,b,c\n1,2\n4,5,6,7\n"

	table, err := ReadFrom(strings.NewReader(csvData), "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if got := table.Rows[0]["c"]; got != "" {
		t.Errorf("short row cell c = %q, want empty", got)
	}
	if got := table.Rows[1]["c"]; got != "6" {
		t.Errorf("long row cell c = %q, want 6", got)
	}
}

func TestReadFromUnsupportedExtension(t *testing.T) {
	_, err := ReadFrom(strings.NewReader("whatever"), "data.pdf")
	if !errors.Is(err, core.ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestReadFromHeaderOnly(t *testing.T) {
	table, err := ReadFrom(strings.NewReader("a,b,c\n"), "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(table.Rows))
	}
	if len(table.Headers) != 3 {
		t.Errorf("headers = %v", table.Headers)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := NewDataReader("/nonexistent/jobs.csv").Read(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
