package ingest

import (
	"errors"
	"strings"
	"testing"

	"routeplan/adapters/tabular"
	"routeplan/domain/core"
	"routeplan/domain/schema"
	"routeplan/internal"
)

func newTestJobParser(columns []string) *JobParser {
	return &JobParser{baseParser{
		match: MatchColumns(columns, schema.DatasetJob),
		fill:  newDefaultFillerAt(core.NewSequenceGenerator(), fixedClock),
		log:   internal.NewLogger(internal.LogLevelError),
		now:   fixedClock,
	}}
}

func TestJobParserFullRow(t *testing.T) {
	columns := []string{"job_id", "date", "latitude", "longitude", "duration_mins", "entry_time", "exit_time", "client_name"}
	p := newTestJobParser(columns)

	job, err := p.Parse(tabular.Row{
		"job_id":        "J-17",
		"date":          "05-02-2025",
		"latitude":      "40.4168",
		"longitude":     "-3.7038",
		"duration_mins": "2h:00m",
		"entry_time":    "05-02-2025 10:00",
		"exit_time":     "05-02-2025 12:30",
		"client_name":   "Acme SL",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.JobID != "J-17" {
		t.Errorf("JobID = %q", job.JobID)
	}
	if job.Date != "2025-02-05" {
		t.Errorf("Date = %q", job.Date)
	}
	if job.DurationMins != 120 {
		t.Errorf("DurationMins = %d", job.DurationMins)
	}
	if job.EntryTime != "2025-02-05 10:00:00" {
		t.Errorf("EntryTime = %q", job.EntryTime)
	}
	if job.ExitTime != "2025-02-05 12:30:00" {
		t.Errorf("ExitTime = %q", job.ExitTime)
	}
	if !job.Location.HasCoordinates() {
		t.Error("expected coordinates")
	}
	if job.ClientName != "Acme SL" {
		t.Errorf("ClientName = %q", job.ClientName)
	}
}

func TestJobParserDefaultsMissingWindow(t *testing.T) {
	columns := []string{"job_id", "address"}
	p := newTestJobParser(columns)

	job, err := p.Parse(tabular.Row{"job_id": "1", "address": "Calle Mayor 1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.DurationMins != 60 {
		t.Errorf("DurationMins = %d, want 60", job.DurationMins)
	}
	if job.EntryTime != "2025-02-05 09:00:00" {
		t.Errorf("EntryTime = %q", job.EntryTime)
	}
	if job.ExitTime != "2025-02-05 23:00:00" {
		t.Errorf("ExitTime = %q", job.ExitTime)
	}
	if job.Date != "2025-02-05" {
		t.Errorf("Date = %q", job.Date)
	}
}

func TestJobParserDescriptionOverridesColumns(t *testing.T) {
	columns := []string{"job_id", "address", "entry_time", "exit_time", "description"}
	p := newTestJobParser(columns)

	job, err := p.Parse(tabular.Row{
		"job_id":      "7",
		"address":     "Calle Mayor 1",
		"entry_time":  "2025-03-28 10:00:00",
		"exit_time":   "2025-03-28 11:00:00",
		"description": "Salida: Hora de salida: 08:40 Entrada: Fecha: 28-03-2025 14:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both edges re-stamped onto the job's own date (defaulted to today since
	// there is no date column), with the description times winning.
	if core.TimePart(job.EntryTime) != "08:40:00" {
		t.Errorf("EntryTime = %q, want 08:40 from description", job.EntryTime)
	}
	if core.TimePart(job.ExitTime) != "14:00:00" {
		t.Errorf("ExitTime = %q, want 14:00 from description", job.ExitTime)
	}
	if core.DatePart(job.EntryTime) != job.Date || core.DatePart(job.ExitTime) != job.Date {
		t.Errorf("window %q / %q not on job date %q", job.EntryTime, job.ExitTime, job.Date)
	}
}

func TestJobParserClampsExitBeforeEntry(t *testing.T) {
	columns := []string{"job_id", "address", "date", "entry_time", "exit_time"}
	p := newTestJobParser(columns)

	job, err := p.Parse(tabular.Row{
		"job_id":     "9",
		"address":    "Calle Mayor 1",
		"date":       "2025-02-05",
		"entry_time": "2025-02-05 18:00:00",
		"exit_time":  "2025-02-05 08:00:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ExitTime != "2025-02-05 23:00:00" {
		t.Errorf("ExitTime = %q, want end-of-day clamp", job.ExitTime)
	}
	if job.EntryTime != "2025-02-05 18:00:00" {
		t.Errorf("EntryTime = %q", job.EntryTime)
	}
}

func TestJobParserRestampsForeignDate(t *testing.T) {
	columns := []string{"job_id", "address", "date", "entry_time"}
	p := newTestJobParser(columns)

	job, err := p.Parse(tabular.Row{
		"job_id":     "3",
		"address":    "Calle Mayor 1",
		"date":       "2025-02-05",
		"entry_time": "2024-12-31 10:30:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.EntryTime != "2025-02-05 10:30:00" {
		t.Errorf("EntryTime = %q, want time-of-day on job date", job.EntryTime)
	}
}

func TestJobParserBareTimeOfDay(t *testing.T) {
	columns := []string{"job_id", "address", "date", "entry_time", "exit_time"}
	p := newTestJobParser(columns)

	job, err := p.Parse(tabular.Row{
		"job_id":     "4",
		"address":    "Calle Mayor 1",
		"date":       "2025-02-05",
		"entry_time": "10:00",
		"exit_time":  "12:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.EntryTime != "2025-02-05 10:00:00" || job.ExitTime != "2025-02-05 12:00:00" {
		t.Errorf("window = %q / %q", job.EntryTime, job.ExitTime)
	}
}

func TestJobParserInvalidDuration(t *testing.T) {
	columns := []string{"job_id", "address", "duration_mins"}
	p := newTestJobParser(columns)

	_, err := p.Parse(tabular.Row{"job_id": "1", "address": "x", "duration_mins": "soon"})
	if err == nil || !strings.Contains(err.Error(), "Invalid duration format: soon") {
		t.Fatalf("expected duration error, got %v", err)
	}
}

func TestJobParserInvalidLocation(t *testing.T) {
	columns := []string{"job_id", "latitude", "longitude"}
	p := newTestJobParser(columns)

	_, err := p.Parse(tabular.Row{"job_id": "1", "latitude": "invalid", "longitude": "-74.006"})
	if !errors.Is(err, core.ErrInvalidLocation) {
		t.Fatalf("expected location error, got %v", err)
	}
}
