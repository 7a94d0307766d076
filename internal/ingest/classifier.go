package ingest

import (
	"strings"

	"routeplan/domain/schema"
)

// Filename keyword lists. Business exports are commonly named for their
// content even when columns are permuted or abbreviated, so filename evidence
// is trusted over structural evidence. The salesman list is checked first:
// "trabajadores" (workers) must not be eaten by the job keyword "trabajo".
var salesmanFileKeywords = []string{
	"salesman", "salesmen", "vendedor", "comercial", "trabajador",
	"worker", "employee", "empleado", "tecnico", "technician",
	"driver", "conductor", "staff", "equipo", "personal",
}

var jobFileKeywords = []string{
	"job", "trabajo", "tarea", "task", "pedido", "order",
	"visita", "visit", "entrega", "delivery", "cita", "servicio",
}

// Classify decides whether a file holds job records, salesman records, or is
// unclassifiable. Order is load-bearing: filename hints first, then
// required-field presence, then an ID-column tie-break.
func Classify(columns []string, fileName string) schema.DatasetType {
	if name := diacriticReplacer.Replace(strings.ToLower(fileName)); name != "" {
		for _, kw := range salesmanFileKeywords {
			if strings.Contains(name, kw) {
				return schema.DatasetSalesman
			}
		}
		for _, kw := range jobFileKeywords {
			if strings.Contains(name, kw) {
				return schema.DatasetJob
			}
		}
	}

	if len(columns) == 0 {
		return schema.DatasetUnknown
	}

	jobMatch := MatchColumns(columns, schema.DatasetJob)
	salesMatch := MatchColumns(columns, schema.DatasetSalesman)

	jobComplete := hasAll(jobMatch, schema.RequiredFieldsFor(schema.DatasetJob))
	salesComplete := hasAll(salesMatch, schema.RequiredFieldsFor(schema.DatasetSalesman))

	if jobComplete && !salesComplete {
		return schema.DatasetJob
	}
	if salesComplete && !jobComplete {
		return schema.DatasetSalesman
	}

	// Both or neither complete: break the tie on ID-like column presence.
	_, hasJobID := jobMatch[schema.IDFieldFor(schema.DatasetJob)]
	_, hasSalesID := salesMatch[schema.IDFieldFor(schema.DatasetSalesman)]
	if hasJobID && !hasSalesID {
		return schema.DatasetJob
	}
	if hasSalesID && !hasJobID {
		return schema.DatasetSalesman
	}

	return schema.DatasetUnknown
}

func hasAll(match schema.ColumnMatch, fields []schema.Field) bool {
	for _, f := range fields {
		if _, ok := match[f]; !ok {
			return false
		}
	}
	return true
}
