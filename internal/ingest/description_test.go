package ingest

import (
	"testing"
	"time"
)

var descRef = time.Date(2025, 2, 5, 12, 0, 0, 0, time.Local)

func TestExtractDescriptionTimesBoth(t *testing.T) {
	text := "Salida: Hora de salida: 08:40 Entrada: Fecha: 28-03-2025 14:00"
	times := ExtractDescriptionTimes(text, descRef)

	if times.ExitTime != "2025-03-28 14:00:00" {
		t.Errorf("ExitTime = %q", times.ExitTime)
	}
	// Entry date is borrowed from the exit match.
	if times.EntryTime != "2025-03-28 08:40:00" {
		t.Errorf("EntryTime = %q", times.EntryTime)
	}
}

func TestExtractDescriptionTimesEntryOnly(t *testing.T) {
	times := ExtractDescriptionTimes("Salida: 07:15 recogida en almacen", descRef)

	if times.ExitTime != "" {
		t.Errorf("ExitTime = %q, want empty", times.ExitTime)
	}
	// No exit match to borrow from: the reference date is used.
	if times.EntryTime != "2025-02-05 07:15:00" {
		t.Errorf("EntryTime = %q", times.EntryTime)
	}
}

func TestExtractDescriptionTimesExitOnly(t *testing.T) {
	times := ExtractDescriptionTimes("Entrada: 15-06-2025 18:30", descRef)

	if times.ExitTime != "2025-06-15 18:30:00" {
		t.Errorf("ExitTime = %q", times.ExitTime)
	}
	if times.EntryTime != "" {
		t.Errorf("EntryTime = %q, want empty", times.EntryTime)
	}
}

func TestExtractDescriptionTimesNone(t *testing.T) {
	times := ExtractDescriptionTimes("cliente habitual, llamar antes de llegar", descRef)
	if times.EntryTime != "" || times.ExitTime != "" {
		t.Errorf("expected no times, got %+v", times)
	}
}

func TestExtractDescriptionTimesCaseInsensitive(t *testing.T) {
	times := ExtractDescriptionTimes("SALIDA: 09:05 ENTRADA: 01-12-2025 17:45", descRef)
	if times.EntryTime != "2025-12-01 09:05:00" {
		t.Errorf("EntryTime = %q", times.EntryTime)
	}
	if times.ExitTime != "2025-12-01 17:45:00" {
		t.Errorf("ExitTime = %q", times.ExitTime)
	}
}
