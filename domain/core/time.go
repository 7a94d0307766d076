package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Canonical layouts. Every timestamp crossing a component boundary inside the
// ingestion subsystem uses DateTimeLayout exactly.
const (
	DateTimeLayout    = "2006-01-02 15:04:05"
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04:05"
	DisplayDateLayout = "02 January 2006"
	DisplayTimeLayout = "15:04"
)

// ISO-style layouts tried before delimiter normalization.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Delimiter-flexible layouts, matched after '-', '.' and '/' are collapsed to
// a single space. Year-first shapes go first: a four-digit leading token can
// never parse as a two-digit day, so the order is safe.
var spacedLayouts = []string{
	"2006 01 02 15:04:05",
	"2006 01 02 15:04",
	"2006 01 02",
	"02 01 2006 15:04:05",
	"02 01 2006 15:04",
	"02 01 2006",
}

var delimiterRe = regexp.MustCompile(`[-./]+`)
var spaceRe = regexp.MustCompile(`\s+`)

// ReadDateTime converts any supported date/time representation into the
// canonical "yyyy-MM-dd HH:mm:ss" form. Supported inputs: time.Time, epoch
// numbers (seconds, or milliseconds when >= 1e12), ISO-8601 strings, and
// delimiter-flexible textual dates ("05-02-2025 09:00", "2025.02.05 09:00:00").
func ReadDateTime(value interface{}) (string, error) {
	if value == nil {
		return "", ErrMissingDateTime
	}

	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return "", ErrMissingDateTime
		}
		return v.Format(DateTimeLayout), nil
	case int:
		return fromEpoch(float64(v)), nil
	case int64:
		return fromEpoch(float64(v)), nil
	case float64:
		return fromEpoch(v), nil
	case string:
		return readDateTimeString(v)
	default:
		return "", fmt.Errorf("Invalid date/time format: %v: %w", value, ErrInvalidDate)
	}
}

func readDateTimeString(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrMissingDateTime
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateTimeLayout), nil
		}
	}

	// Bare numeric strings are epoch values.
	if epoch, err := strconv.ParseFloat(s, 64); err == nil {
		return fromEpoch(epoch), nil
	}

	normalized := delimiterRe.ReplaceAllString(s, " ")
	normalized = strings.TrimSpace(spaceRe.ReplaceAllString(normalized, " "))
	for _, layout := range spacedLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.Format(DateTimeLayout), nil
		}
	}

	return "", fmt.Errorf("Invalid date/time format: %q: %w", raw, ErrInvalidDate)
}

func fromEpoch(v float64) string {
	sec := int64(v)
	if v >= 1e12 { // milliseconds
		return time.UnixMilli(sec).Format(DateTimeLayout)
	}
	return time.Unix(sec, 0).Format(DateTimeLayout)
}

// FormatDisplayDate renders a canonical date-time as "dd MMMM yyyy".
// Unparseable input yields an empty string rather than an error.
func FormatDisplayDate(canonical string) string {
	t, err := time.Parse(DateTimeLayout, canonical)
	if err != nil {
		return ""
	}
	return t.Format(DisplayDateLayout)
}

// FormatDisplayTime renders a canonical date-time as "HH:mm".
func FormatDisplayTime(canonical string) string {
	t, err := time.Parse(DateTimeLayout, canonical)
	if err != nil {
		return ""
	}
	return t.Format(DisplayTimeLayout)
}

// DatePart returns the "yyyy-MM-dd" prefix of a canonical date-time.
func DatePart(canonical string) string {
	if len(canonical) < len(DateLayout) {
		return canonical
	}
	return canonical[:len(DateLayout)]
}

// TimePart returns the "HH:mm:ss" suffix of a canonical date-time.
func TimePart(canonical string) string {
	t, err := time.Parse(DateTimeLayout, canonical)
	if err != nil {
		return ""
	}
	return t.Format(TimeLayout)
}

// SpliceDate re-stamps the time-of-day of a canonical date-time onto the given
// "yyyy-MM-dd" date. A time value never silently carries a different day than
// the record it belongs to.
func SpliceDate(date, canonical string) string {
	tod := TimePart(canonical)
	if tod == "" {
		return canonical
	}
	return date + " " + tod
}

// BeforeDateTime reports whether canonical a is strictly earlier than b.
func BeforeDateTime(a, b string) bool {
	ta, errA := time.Parse(DateTimeLayout, a)
	tb, errB := time.Parse(DateTimeLayout, b)
	if errA != nil || errB != nil {
		return false
	}
	return ta.Before(tb)
}
