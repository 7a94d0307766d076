package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"routeplan/domain/core"
	"routeplan/domain/schema"
)

// BatchRepository persists parse results so a batch can be inspected or
// re-dispatched after the upload request has finished.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository creates a new batch repository.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Connect opens a postgres connection and verifies it.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// EnsureSchema creates the batch tables if they do not exist yet.
func (r *BatchRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			dataset_type TEXT NOT NULL,
			source_file TEXT NOT NULL,
			record_count INT NOT NULL,
			skipped_rows INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			job_id TEXT NOT NULL,
			date TEXT NOT NULL,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			address TEXT NOT NULL DEFAULT '',
			duration_mins INT NOT NULL,
			entry_time TEXT NOT NULL,
			exit_time TEXT NOT NULL,
			client_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (batch_id, job_id)
		)`,
		`CREATE TABLE IF NOT EXISTS salesmen (
			batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			salesman_id TEXT NOT NULL,
			salesman_name TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			address TEXT NOT NULL DEFAULT '',
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			PRIMARY KEY (batch_id, salesman_id)
		)`,
		`CREATE TABLE IF NOT EXISTS parse_errors (
			batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			row_number INT NOT NULL,
			column_name TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Save stores a parse result as one batch, atomically.
func (r *BatchRepository) Save(ctx context.Context, res *schema.ParseResult, sourceFile string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO batches (id, dataset_type, source_file, record_count, skipped_rows)
		 VALUES ($1, $2, $3, $4, $5)`,
		res.BatchID, res.Type, sourceFile, res.RecordCount(), res.SkippedRows,
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	for _, job := range res.Jobs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO jobs (batch_id, job_id, date, latitude, longitude, address,
				duration_mins, entry_time, exit_time, client_name, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			res.BatchID, job.JobID, job.Date, job.Location.Latitude, job.Location.Longitude,
			job.Location.Address, job.DurationMins, job.EntryTime, job.ExitTime,
			job.ClientName, job.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert job %s: %w", job.JobID, err)
		}
	}

	for _, s := range res.Salesmen {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO salesmen (batch_id, salesman_id, salesman_name, latitude, longitude,
				address, start_time, end_time)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			res.BatchID, s.SalesmanID, s.SalesmanName, s.Location.Latitude, s.Location.Longitude,
			s.Location.Address, s.StartTime, s.EndTime,
		)
		if err != nil {
			return fmt.Errorf("failed to insert salesman %s: %w", s.SalesmanID, err)
		}
	}

	for _, pe := range res.Errors {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO parse_errors (batch_id, row_number, column_name, message)
			 VALUES ($1, $2, $3, $4)`,
			res.BatchID, pe.Row, pe.Column, pe.Message,
		)
		if err != nil {
			return fmt.Errorf("failed to insert parse error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// GetBatch reloads a stored batch by ID.
func (r *BatchRepository) GetBatch(ctx context.Context, id core.BatchID) (*schema.ParseResult, error) {
	var meta struct {
		Type        schema.DatasetType `db:"dataset_type"`
		SkippedRows int                `db:"skipped_rows"`
	}
	err := r.db.GetContext(ctx, &meta,
		`SELECT dataset_type, skipped_rows FROM batches WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("batch not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	res := &schema.ParseResult{
		BatchID:     id,
		Type:        meta.Type,
		SkippedRows: meta.SkippedRows,
	}

	switch meta.Type {
	case schema.DatasetJob:
		res.Jobs, err = r.loadJobs(ctx, id)
	case schema.DatasetSalesman:
		res.Salesmen, err = r.loadSalesmen(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT row_number, column_name, message FROM parse_errors WHERE batch_id = $1 ORDER BY row_number`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query parse errors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pe schema.ParseError
		if err := rows.Scan(&pe.Row, &pe.Column, &pe.Message); err != nil {
			return nil, fmt.Errorf("failed to scan parse error: %w", err)
		}
		res.Errors = append(res.Errors, pe)
	}

	return res, rows.Err()
}

func (r *BatchRepository) loadJobs(ctx context.Context, id core.BatchID) ([]schema.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT job_id, date, latitude, longitude, address, duration_mins,
			entry_time, exit_time, client_name, description
		 FROM jobs WHERE batch_id = $1 ORDER BY job_id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []schema.Job
	for rows.Next() {
		var job schema.Job
		err := rows.Scan(&job.JobID, &job.Date, &job.Location.Latitude, &job.Location.Longitude,
			&job.Location.Address, &job.DurationMins, &job.EntryTime, &job.ExitTime,
			&job.ClientName, &job.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *BatchRepository) loadSalesmen(ctx context.Context, id core.BatchID) ([]schema.Salesman, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT salesman_id, salesman_name, latitude, longitude, address, start_time, end_time
		 FROM salesmen WHERE batch_id = $1 ORDER BY salesman_id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query salesmen: %w", err)
	}
	defer rows.Close()

	var salesmen []schema.Salesman
	for rows.Next() {
		var s schema.Salesman
		err := rows.Scan(&s.SalesmanID, &s.SalesmanName, &s.Location.Latitude, &s.Location.Longitude,
			&s.Location.Address, &s.StartTime, &s.EndTime)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salesman: %w", err)
		}
		salesmen = append(salesmen, s)
	}
	return salesmen, rows.Err()
}

// Delete removes a batch and its dependent rows.
func (r *BatchRepository) Delete(ctx context.Context, id core.BatchID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("batch not found: %s", id)
	}
	return nil
}
