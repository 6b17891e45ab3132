package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fip_qc/internal/models"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

// Ensure implementation of RunRepo interface at compile time.
var _ RunRepo = (*RunSQLite)(nil)

const (
	insertRunSQL = `
		INSERT INTO qc_runs (id, session, epoch, started_at, finished_at, passed, failed, skipped, errored, operator_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	insertResultSQL = `
		INSERT INTO qc_results (run_id, seq, suite, check_name, target, status, message, value, artifact)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectRunColumns = `SELECT id, session, epoch, started_at, finished_at, passed, failed, skipped, errored, operator_id FROM qc_runs`
	selectResultsSQL = `
		SELECT suite, check_name, target, status, message, value, artifact
		FROM qc_results WHERE run_id = ? ORDER BY seq ASC
	`
)

// Save inserts a run and all of its results in one transaction. An empty ID
// is replaced by a new UUID; timestamps are stored as UTC.
func (r *RunSQLite) Save(ctx context.Context, run models.QCRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = run.StartedAt
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run %s: %w", run.ID, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.Session,
		run.Epoch,
		run.StartedAt.UTC(),
		run.FinishedAt.UTC(),
		run.Passed,
		run.Failed,
		run.Skipped,
		run.Errored,
		run.OperatorID,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for i, res := range run.Results {
		var value sql.NullFloat64
		if res.Value != nil {
			value = sql.NullFloat64{Float64: *res.Value, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertResultSQL,
			run.ID, i, res.Suite, res.Check, res.Target, res.Status, res.Message, value, res.Artifact,
		); err != nil {
			return fmt.Errorf("insert result %d of run %s: %w", i, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns a run with its results. Returns (nil, nil) if not found.
func (r *RunSQLite) Get(ctx context.Context, id string) (*models.QCRun, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRunColumns+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select run %s: %w", id, err)
	}
	results, err := r.results(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Results = results
	return &run, nil
}

// Latest returns the most recently finished run without results. Returns (nil, nil) if there is none.
func (r *RunSQLite) Latest(ctx context.Context) (*models.QCRun, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRunColumns+" ORDER BY finished_at DESC LIMIT 1"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest run: %w", err)
	}
	return &run, nil
}

// List returns runs (without results) filtered by [from, to] on start time
// and/or session, ordered by start time ascending.
func (r *RunSQLite) List(ctx context.Context, from, to time.Time, session string) ([]models.QCRun, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "started_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "started_at <= ?")
		args = append(args, to.UTC())
	}
	if session = strings.TrimSpace(session); session != "" {
		conds = append(conds, "session = ?")
		args = append(args, session)
	}

	q := selectRunColumns
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY started_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.QCRun, 0, 16)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RunSQLite) results(ctx context.Context, runID string) ([]models.QCResultRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectResultsSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("select results of run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []models.QCResultRecord
	for rows.Next() {
		var (
			res   models.QCResultRecord
			value sql.NullFloat64
		)
		if err := rows.Scan(&res.Suite, &res.Check, &res.Target, &res.Status, &res.Message, &value, &res.Artifact); err != nil {
			return nil, err
		}
		if value.Valid {
			v := value.Float64
			res.Value = &v
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (models.QCRun, error) {
	var run models.QCRun
	if err := s.Scan(
		&run.ID,
		&run.Session,
		&run.Epoch,
		&run.StartedAt,
		&run.FinishedAt,
		&run.Passed,
		&run.Failed,
		&run.Skipped,
		&run.Errored,
		&run.OperatorID,
	); err != nil {
		return models.QCRun{}, err
	}
	run.StartedAt = run.StartedAt.UTC()
	run.FinishedAt = run.FinishedAt.UTC()
	return run, nil
}
