package ingest

import (
	"testing"

	"routeplan/domain/schema"
)

func TestClassifyByColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    schema.DatasetType
	}{
		{
			"canonical job columns",
			[]string{"job_id", "date", "latitude", "longitude", "duration_mins", "entry_time", "exit_time"},
			schema.DatasetJob,
		},
		{
			"job columns with punctuation and case variants",
			[]string{"Job-ID", "Date", "LATITUDE", "Longitude", "Duration_Mins", "Entry Time", "Exit-Time"},
			schema.DatasetJob,
		},
		{
			"alternative job names",
			[]string{"jobid", "delivery_date", "lat", "long", "minutes", "window_start", "window_end"},
			schema.DatasetJob,
		},
		{
			"canonical salesman columns",
			[]string{"salesman_id", "latitude", "longitude", "start_time", "end_time"},
			schema.DatasetSalesman,
		},
		{
			"ambiguous contact export",
			[]string{"id", "name", "address", "phone"},
			schema.DatasetUnknown,
		},
		{
			"empty column list",
			nil,
			schema.DatasetUnknown,
		},
		{
			"id tie-break toward job",
			[]string{"job_id", "address"},
			schema.DatasetJob,
		},
		{
			"id tie-break toward salesman",
			[]string{"salesman_id", "address"},
			schema.DatasetSalesman,
		},
	}

	for _, tt := range tests {
		if got := Classify(tt.columns, ""); got != tt.want {
			t.Errorf("%s: Classify = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestClassifyByFileName(t *testing.T) {
	tests := []struct {
		fileName string
		want     schema.DatasetType
	}{
		{"trabajos_marzo.xlsx", schema.DatasetJob},
		{"Pedidos 2025.csv", schema.DatasetJob},
		{"vendedores.csv", schema.DatasetSalesman},
		{"Trabajadores Madrid.xlsx", schema.DatasetSalesman},
		{"export.csv", schema.DatasetUnknown},
	}

	for _, tt := range tests {
		if got := Classify(nil, tt.fileName); got != tt.want {
			t.Errorf("Classify(nil, %q) = %q, want %q", tt.fileName, got, tt.want)
		}
	}
}

// Filename evidence is trusted over structural evidence.
func TestClassifyFileNameWinsOverColumns(t *testing.T) {
	salesmanColumns := []string{"salesman_id", "start_time", "end_time"}
	if got := Classify(salesmanColumns, "jobs_export.csv"); got != schema.DatasetJob {
		t.Errorf("Classify = %q, want job (filename hint wins)", got)
	}
}
