package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fip_qc/internal/models"
)

type AcquisitionSQLite struct {
	db *sql.DB
}

func NewAcquisitionSQLite(db *sql.DB) *AcquisitionSQLite {
	return &AcquisitionSQLite{db: db}
}

// Ensure implementation of AcquisitionRepo interface at compile time.
var _ AcquisitionRepo = (*AcquisitionSQLite)(nil)

const (
	upsertAcquisitionSQL = `
		INSERT INTO acquisitions (session, subject_id, start_time, end_time, record, mapped_by, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session) DO UPDATE SET
			subject_id=excluded.subject_id,
			start_time=excluded.start_time,
			end_time=excluded.end_time,
			record=excluded.record,
			mapped_by=excluded.mapped_by,
			updated_at=excluded.updated_at
	`

	selectAcquisitionSQL = `SELECT session, record FROM acquisitions WHERE session = ?`
)

// Save stores the record keyed by its session path, replacing an earlier mapping.
// mappedBy is the operator who triggered the mapping, 0 when unknown.
func (r *AcquisitionSQLite) Save(ctx context.Context, rec models.AcquisitionRecord, mappedBy int) error {
	if rec.SessionPath == "" {
		return errors.New("acquisition record has no session path")
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal acquisition of %s: %w", rec.SessionPath, err)
	}
	_, err = r.db.ExecContext(ctx, upsertAcquisitionSQL,
		rec.SessionPath,
		rec.SubjectID,
		rec.Start.UTC(),
		rec.End.UTC(),
		string(b),
		mappedBy,
		time.Now().UTC(),
	)
	return err
}

// Load fetches the record of a session. Returns (nil, nil) if none was stored.
func (r *AcquisitionSQLite) Load(ctx context.Context, session string) (*models.AcquisitionRecord, error) {
	var (
		path string
		raw  string
	)
	if err := r.db.QueryRowContext(ctx, selectAcquisitionSQL, session).Scan(&path, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var rec models.AcquisitionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode acquisition of %s: %w", session, err)
	}
	rec.SessionPath = path
	return &rec, nil
}
