package ingest

import (
	"regexp"
	"time"

	"routeplan/domain/core"
)

// Booking descriptions frequently embed the literal scheduling text, e.g.
// "Salida: Hora de salida: 08:40 Entrada: Fecha: 28-03-2025 14:00". The
// "Entrada" clause carries the full exit timestamp (dd-MM-yyyy HH:mm); the
// "Salida" clause carries a bare entry time of day whose date is borrowed
// from the exit match when present.
var (
	descExitRe  = regexp.MustCompile(`(?i)entrada:\D*?(\d{2}-\d{2}-\d{4})\s+(\d{1,2}:\d{2})`)
	descEntryRe = regexp.MustCompile(`(?i)salida:\D*?(\d{1,2}:\d{2})`)
)

// DescriptionTimes holds the scheduling times recovered from free text, in
// canonical form. Empty fields mean the pattern did not match.
type DescriptionTimes struct {
	EntryTime string
	ExitTime  string
}

// ExtractDescriptionTimes scans description text for embedded scheduling
// information. Pure function: no side effects, the reference time is only
// used when the entry time has no date to borrow.
func ExtractDescriptionTimes(text string, ref time.Time) DescriptionTimes {
	var out DescriptionTimes
	var exitDate string

	if m := descExitRe.FindStringSubmatch(text); m != nil {
		if canonical, err := core.ReadDateTime(m[1] + " " + m[2]); err == nil {
			out.ExitTime = canonical
			exitDate = core.DatePart(canonical)
		}
	}

	if m := descEntryRe.FindStringSubmatch(text); m != nil {
		date := exitDate
		if date == "" {
			date = ref.Format(core.DateLayout)
		}
		if canonical, err := core.ReadDateTime(date + " " + m[1]); err == nil {
			out.EntryTime = canonical
		}
	}

	return out
}
