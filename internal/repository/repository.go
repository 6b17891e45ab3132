package repository

import (
	"context"
	"database/sql"
	"time"

	"fip_qc/internal/models"
)

// Operators stores the accounts allowed to use the report API.
type Operators interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
}

type RunRepo interface {
	Save(ctx context.Context, run models.QCRun) error
	Get(ctx context.Context, id string) (*models.QCRun, error)
	List(ctx context.Context, from, to time.Time, session string) ([]models.QCRun, error)
	Latest(ctx context.Context) (*models.QCRun, error)
}

type AcquisitionRepo interface {
	Save(ctx context.Context, rec models.AcquisitionRecord, mappedBy int) error
	Load(ctx context.Context, session string) (*models.AcquisitionRecord, error)
}

type Repository struct {
	Runs         RunRepo
	Acquisitions AcquisitionRepo
	Operators    Operators
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Runs:         NewRunSQLite(db),
		Acquisitions: NewAcquisitionSQLite(db),
		Operators:    NewOperatorSQLite(db),
	}
}
