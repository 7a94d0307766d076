package ingest

import (
	"strings"

	"routeplan/domain/schema"
)

// diacriticReplacer folds the accented characters seen in Spanish-language
// exports so "Dirección" and "direccion" normalize identically.
var diacriticReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u",
	"ü", "u", "Ü", "u", "ñ", "n", "Ñ", "n",
)

// normalizeName lower-cases, strips diacritics and drops every
// non-alphanumeric character, so "Job-ID", "job_id" and "JOBID " are
// equivalent.
func normalizeName(s string) string {
	s = diacriticReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchColumns maps each canonical field of the target schema to the first
// actual column whose normalized name equals a normalized synonym. Unmatched
// fields are simply absent; absence is resolved later by the default filler.
func MatchColumns(columns []string, t schema.DatasetType) schema.ColumnMatch {
	match := make(schema.ColumnMatch)

	normalized := make([]string, len(columns))
	for i, col := range columns {
		normalized[i] = normalizeName(col)
	}

	for _, field := range schema.FieldsFor(t) {
		variants := make(map[string]bool)
		for _, syn := range schema.SynonymsFor(t, field) {
			variants[normalizeName(syn)] = true
		}
		for i, col := range columns {
			if normalized[i] == "" {
				continue
			}
			if variants[normalized[i]] {
				match[field] = col
				break
			}
		}
	}

	return match
}
