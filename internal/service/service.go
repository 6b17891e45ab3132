package service

import (
	"context"
	"time"

	"fip_qc/internal/config"
	"fip_qc/internal/logger"
	"fip_qc/internal/metrics"
	"fip_qc/internal/models"
	"fip_qc/internal/repository"
)

// Authorization registers operators and issues/validates their bearer tokens.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Acquisition maps a session directory to its acquisition record.
type Acquisition interface {
	MapSession(ctx context.Context, sessionPath string) (models.AcquisitionRecord, error)
	GetAcquisition(ctx context.Context, sessionPath string) (*models.AcquisitionRecord, error)
}

// QC runs the check suites over every epoch of a session.
type QC interface {
	RunSession(ctx context.Context, sessionPath string) ([]models.QCRun, error)
	RunEpoch(ctx context.Context, sessionPath string, ep models.Epoch) (models.QCRun, error)
}

// Reports exposes stored QC runs with filtering access.
type Reports interface {
	ListRuns(ctx context.Context, f RunFilter) ([]models.QCRun, error)
	GetRun(ctx context.Context, id string) (models.QCRun, error)
	LatestRun(ctx context.Context) (*models.QCRun, error)
}

// Simulator writes synthetic sessions to disk.
type Simulator interface {
	Generate(dir string, p SimParams) (string, error)
}

// RunFilter supports run history filtering by time range and session.
type RunFilter struct {
	From    time.Time // inclusive; zero means no lower bound
	To      time.Time // inclusive; zero means no upper bound
	Session string    // "" means any session
}

// Service aggregates all sub-services.
type Service struct {
	Acquisition
	QC
	Reports
	Simulator
	Authorization
}

// Deps carries the ambient dependencies shared by the services.
type Deps struct {
	Config  *config.Config
	Log     *logger.Logger
	Metrics *metrics.Metrics
}

// NewService wires the repository layer into the concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		Acquisition:   NewAcquisitionService(cfg.Session, cfg.Acquisition, repos.Acquisitions, log, deps.Metrics),
		QC:            NewQCService(cfg.Session, cfg.QC, repos.Runs, log, deps.Metrics),
		Reports:       NewReportService(repos.Runs),
		Simulator:     NewSimulatorService(log),
		Authorization: NewAuthService(repos.Operators, cfg.Auth.SigningKey, cfg.Auth.TokenTTL),
	}
}
