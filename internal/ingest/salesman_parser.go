package ingest

import (
	"routeplan/adapters/tabular"
	"routeplan/domain/core"
	"routeplan/domain/schema"
)

// SalesmanParser builds one fully-typed Salesman per source row. Symmetric to
// the job parser, without description-time extraction or duration.
type SalesmanParser struct {
	baseParser
}

func (p *SalesmanParser) parseInto(res *schema.ParseResult, row tabular.Row, rowNum int) {
	salesman, err := p.Parse(row)
	if err != nil {
		p.recordError(res, rowNum, err)
		return
	}
	res.Salesmen = append(res.Salesmen, salesman)
}

// Parse resolves the row against the column match, fills gaps with defaults,
// builds the location and validates the result.
func (p *SalesmanParser) Parse(row tabular.Row) (schema.Salesman, error) {
	var salesman schema.Salesman

	if v, ok := p.value(row, schema.FieldSalesmanID); ok {
		salesman.SalesmanID = v
	} else {
		salesman.SalesmanID = p.fill.SalesmanID()
	}

	today := p.fill.Date()
	start, err := p.timeField(row, schema.FieldStartTime, today, p.fill.SalesmanStartTime())
	if err != nil {
		return salesman, err
	}
	end, err := p.timeField(row, schema.FieldEndTime, today, p.fill.SalesmanEndTime())
	if err != nil {
		return salesman, err
	}
	salesman.StartTime = start
	salesman.EndTime = end

	loc, err := p.location(row)
	if err != nil {
		return salesman, err
	}
	salesman.Location = loc

	if v, ok := p.value(row, schema.FieldSalesmanName); ok {
		salesman.SalesmanName = v
	}

	return salesman, p.validate(salesman)
}

func (p *SalesmanParser) validate(salesman schema.Salesman) error {
	if salesman.SalesmanID == "" {
		return core.NewMissingFieldError(string(schema.FieldSalesmanID))
	}
	if salesman.StartTime == "" {
		return core.NewMissingFieldError(string(schema.FieldStartTime))
	}
	if salesman.EndTime == "" {
		return core.NewMissingFieldError(string(schema.FieldEndTime))
	}
	if !salesman.Location.Valid() {
		return core.ErrInvalidLocation
	}
	return nil
}
