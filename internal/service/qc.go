package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fip_qc/internal/artifact"
	"fip_qc/internal/config"
	"fip_qc/internal/dataset"
	"fip_qc/internal/epoch"
	"fip_qc/internal/logger"
	"fip_qc/internal/metrics"
	"fip_qc/internal/models"
	"fip_qc/internal/qc"
	"fip_qc/internal/repository"
)

// ErrNoEpochs is returned when a session has nothing to check.
var ErrNoEpochs = errors.New("no epochs found in session")

type QCService struct {
	session  config.SessionConfig
	cfg      config.QCConfig
	repo     repository.RunRepo
	exporter *artifact.Exporter
	log      *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewQCService(session config.SessionConfig, cfg config.QCConfig, repo repository.RunRepo,
	log *logger.Logger, m *metrics.Metrics,
) *QCService {
	if log == nil {
		log = logger.NewNop()
	}
	return &QCService{
		session:  session,
		cfg:      cfg,
		repo:     repo,
		exporter: artifact.NewExporter(cfg.ArtifactDir, log),
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

// RunSession checks every epoch of the session in discovery order.
func (s *QCService) RunSession(ctx context.Context, sessionPath string) ([]models.QCRun, error) {
	epochs, err := epoch.NewDiscovery(s.session.EpochDir, s.session.EpochGlob, s.log).Scan(sessionPath)
	if err != nil {
		return nil, err
	}
	var runs []models.QCRun
	for ep := range epochs {
		if err := ctx.Err(); err != nil {
			return runs, err
		}
		run, err := s.RunEpoch(ctx, sessionPath, ep)
		if err != nil {
			return runs, err
		}
		runs = append(runs, run)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoEpochs, sessionPath)
	}
	return runs, nil
}

// RunEpoch runs every suite over one epoch, exports artifacts and stores the run.
func (s *QCService) RunEpoch(ctx context.Context, sessionPath string, ep models.Epoch) (models.QCRun, error) {
	started := s.now().UTC()

	suites, err := qc.BuildSuites(dataset.Open(ep.Path), s.cfg)
	if err != nil {
		return models.QCRun{}, err
	}
	var observers []qc.Observer
	if s.metrics != nil {
		observers = append(observers, s.metrics.ObserveResult)
	}
	report := qc.NewRunner(s.log, observers...).Run(suites...)
	artifacts := s.exporter.ExportAll(report)

	run := models.QCRun{
		ID:         uuid.NewString(),
		Session:    sessionPath,
		Epoch:      ep.ID,
		StartedAt:  started,
		FinishedAt: s.now().UTC(),
	}
	run.OperatorID, _ = OperatorFromContext(ctx)
	for _, suite := range report.Suites {
		for i, res := range report.BySuite[suite] {
			run.Results = append(run.Results, res.Record(artifacts[suite][i]))
			switch res.Status {
			case qc.StatusPass:
				run.Passed++
			case qc.StatusFail:
				run.Failed++
			case qc.StatusSkip:
				run.Skipped++
			case qc.StatusError:
				run.Errored++
			}
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveRun(run.FinishedAt.Sub(run.StartedAt), run.OK())
	}
	if s.repo != nil {
		if err := s.repo.Save(ctx, run); err != nil {
			return run, fmt.Errorf("store qc run: %w", err)
		}
	}
	s.log.Infow("qc_run_finished", "run", run.ID, "epoch", ep.ID, "operator", run.OperatorID,
		"passed", run.Passed, "failed", run.Failed, "skipped", run.Skipped, "errored", run.Errored)
	return run, nil
}
