package ingest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"routeplan/adapters/tabular"
	"routeplan/domain/core"
	"routeplan/domain/schema"
	"routeplan/internal"
)

// rowParser is the polymorphic per-row parsing contract shared by dataset
// types. Implementations append either a typed record or a row-scoped error
// to the result; a row failure never stops subsequent rows.
type rowParser interface {
	parseInto(res *schema.ParseResult, row tabular.Row, rowNum int)
}

// newRowParser constructs the parser variant for the classified dataset type.
func newRowParser(t schema.DatasetType, match schema.ColumnMatch, fill *DefaultFiller, log *internal.Logger, now func() time.Time) rowParser {
	base := baseParser{match: match, fill: fill, log: log, now: now}
	switch t {
	case schema.DatasetSalesman:
		return &SalesmanParser{baseParser: base}
	default:
		return &JobParser{baseParser: base}
	}
}

// baseParser carries the per-file state shared by both parser variants: the
// resolved column match, the default filler and the clock.
type baseParser struct {
	match schema.ColumnMatch
	fill  *DefaultFiller
	log   *internal.Logger
	now   func() time.Time
}

func (b *baseParser) value(row tabular.Row, field schema.Field) (string, bool) {
	return rawValue(row, b.match, field)
}

func (b *baseParser) location(row tabular.Row) (schema.Location, error) {
	return b.fill.BuildLocation(row, b.match)
}

var bareTimeRe = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// timeField resolves one time-window field: the matched column value when
// present (bare times of day get the record's date prepended), else the
// fallback default. The result is always canonical.
func (b *baseParser) timeField(row tabular.Row, field schema.Field, date, fallback string) (string, error) {
	v, ok := b.value(row, field)
	if !ok {
		return fallback, nil
	}
	if bareTimeRe.MatchString(v) {
		v = date + " " + v
	}
	return core.ReadDateTime(v)
}

func (b *baseParser) recordError(res *schema.ParseResult, rowNum int, err error) {
	res.Errors = append(res.Errors, schema.ParseError{
		Row:     rowNum,
		Message: core.NewRowError(rowNum, err).Error(),
	})
}

// ParseDuration accepts a bare integer, a numeric string, or an "<H>h:<M>m"
// pattern ("2h:00m" -> 120, "1h:30m" -> 90). The result must be positive.
func ParseDuration(value string) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, errors.New("Duration value is null or undefined")
	}

	if n, err := strconv.Atoi(v); err == nil {
		return positiveDuration(n, value)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return positiveDuration(int(f), value)
	}
	if m := durationPatternRe.FindStringSubmatch(v); m != nil {
		hours, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return positiveDuration(hours*60+mins, value)
	}

	return 0, fmt.Errorf("Invalid duration format: %s", value)
}

var durationPatternRe = regexp.MustCompile(`(?i)^(\d+)h:(\d{1,2})m$`)

func positiveDuration(mins int, raw string) (int, error) {
	if mins <= 0 {
		return 0, fmt.Errorf("Invalid duration format: %s", raw)
	}
	return mins, nil
}
