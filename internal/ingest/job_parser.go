package ingest

import (
	"routeplan/adapters/tabular"
	"routeplan/domain/core"
	"routeplan/domain/schema"
)

// JobParser builds one fully-typed Job per source row.
type JobParser struct {
	baseParser
}

func (p *JobParser) parseInto(res *schema.ParseResult, row tabular.Row, rowNum int) {
	job, err := p.Parse(row)
	if err != nil {
		p.recordError(res, rowNum, err)
		return
	}
	res.Jobs = append(res.Jobs, job)
}

// Parse resolves the row against the column match, fills gaps with defaults,
// builds the location, normalizes every time field and validates the result.
func (p *JobParser) Parse(row tabular.Row) (schema.Job, error) {
	var job schema.Job

	if v, ok := p.value(row, schema.FieldJobID); ok {
		job.JobID = v
	} else {
		job.JobID = p.fill.JobID()
	}

	if v, ok := p.value(row, schema.FieldDate); ok {
		canonical, err := core.ReadDateTime(v)
		if err != nil {
			return job, err
		}
		job.Date = core.DatePart(canonical)
	} else {
		job.Date = p.fill.Date()
	}

	if v, ok := p.value(row, schema.FieldDurationMins); ok {
		mins, err := ParseDuration(v)
		if err != nil {
			return job, err
		}
		job.DurationMins = mins
	} else {
		job.DurationMins = DefaultDurationMins
	}

	entry, err := p.timeField(row, schema.FieldEntryTime, job.Date, p.fill.JobEntryTime())
	if err != nil {
		return job, err
	}
	exit, err := p.timeField(row, schema.FieldExitTime, job.Date, p.fill.JobExitTime())
	if err != nil {
		return job, err
	}

	// Times recovered from the description override the column-derived ones:
	// the description is often the literal source booking text.
	if v, ok := p.value(row, schema.FieldDescription); ok {
		job.Description = v
		times := ExtractDescriptionTimes(v, p.now())
		if times.EntryTime != "" {
			entry = times.EntryTime
		}
		if times.ExitTime != "" {
			exit = times.ExitTime
		}
	}

	// Re-stamp both window edges onto the job's own date; a time value never
	// silently carries a different day than the record it belongs to.
	job.EntryTime = core.SpliceDate(job.Date, entry)
	job.ExitTime = core.SpliceDate(job.Date, exit)
	if core.BeforeDateTime(job.ExitTime, job.EntryTime) {
		p.log.Warn("job %s: exit %s precedes entry %s, clamping exit to end of day",
			job.JobID, job.ExitTime, job.EntryTime)
		job.ExitTime = job.Date + " " + endOfDay
	}

	loc, err := p.location(row)
	if err != nil {
		return job, err
	}
	job.Location = loc

	if v, ok := p.value(row, schema.FieldClientName); ok {
		job.ClientName = v
	}

	return job, p.validate(job)
}

// validate rejects any required field still empty after defaulting; the
// filler should already have closed every legitimately-optional gap.
func (p *JobParser) validate(job schema.Job) error {
	required := map[schema.Field]string{
		schema.FieldJobID:     job.JobID,
		schema.FieldDate:      job.Date,
		schema.FieldEntryTime: job.EntryTime,
		schema.FieldExitTime:  job.ExitTime,
	}
	for _, field := range []schema.Field{schema.FieldJobID, schema.FieldDate, schema.FieldEntryTime, schema.FieldExitTime} {
		if required[field] == "" {
			return core.NewMissingFieldError(string(field))
		}
	}
	if !job.Location.Valid() {
		return core.ErrInvalidLocation
	}
	return nil
}
