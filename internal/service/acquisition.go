package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"fip_qc/internal/acquisition"
	"fip_qc/internal/config"
	"fip_qc/internal/dataset"
	"fip_qc/internal/epoch"
	"fip_qc/internal/logger"
	"fip_qc/internal/metrics"
	"fip_qc/internal/models"
	"fip_qc/internal/repository"
	"fip_qc/internal/timing"
)

// ErrMissingInputs is returned when no epoch carries both rig and session documents.
var ErrMissingInputs = errors.New("no epoch carries Logs/rig_input.json and Logs/session_input.json")

type AcquisitionService struct {
	session config.SessionConfig
	opts    config.AcquisitionConfig
	repo    repository.AcquisitionRepo
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewAcquisitionService(session config.SessionConfig, opts config.AcquisitionConfig,
	repo repository.AcquisitionRepo, log *logger.Logger, m *metrics.Metrics,
) *AcquisitionService {
	if log == nil {
		log = logger.NewNop()
	}
	return &AcquisitionService{session: session, opts: opts, repo: repo, log: log, metrics: m}
}

// MapSession discovers the epochs of a session, aggregates their timing into
// an acquisition record, writes acquisition_fip.json next to the session and
// stores the record. Session-timing annotation runs when enabled.
func (s *AcquisitionService) MapSession(ctx context.Context, sessionPath string) (models.AcquisitionRecord, error) {
	epochs, err := epoch.NewDiscovery(s.session.EpochDir, s.session.EpochGlob, s.log).Scan(sessionPath)
	if err != nil {
		return models.AcquisitionRecord{}, err
	}

	rig, sess, err := readInputs(epochs)
	if err != nil {
		return models.AcquisitionRecord{}, fmt.Errorf("%s: %w", sessionPath, err)
	}

	extractor := timing.NewExtractor(s.session.TimingStreams, s.session.TimingColumn, timing.DirOpener, s.log)
	rec, err := acquisition.NewAggregator(countingTiming{TimingSource: extractor, metrics: s.metrics}, s.log).
		Aggregate(epochs, rig, sess)
	if err != nil {
		return models.AcquisitionRecord{}, fmt.Errorf("%s: %w", sessionPath, err)
	}
	rec.SessionPath = sessionPath

	if s.opts.WriteJSON {
		path, err := acquisition.WriteFile(sessionPath, rec)
		if err != nil {
			return rec, err
		}
		s.log.Infow("acquisition_written", "path", path)
	}
	if s.opts.AnnotateSession {
		s.annotate(epochs, rec)
	}
	operatorID, _ := OperatorFromContext(ctx)
	if s.repo != nil {
		if err := s.repo.Save(ctx, rec, operatorID); err != nil {
			return rec, fmt.Errorf("store acquisition: %w", err)
		}
	}
	s.log.Infow("acquisition_mapped", "session", sessionPath, "epochs", len(rec.Epochs),
		"start", rec.Start, "end", rec.End, "operator", operatorID)
	return rec, nil
}

// GetAcquisition returns the stored record of a session, or nil.
func (s *AcquisitionService) GetAcquisition(ctx context.Context, sessionPath string) (*models.AcquisitionRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.Load(ctx, sessionPath)
}

// annotate writes the session bounds into every timed epoch's session document.
// Failures are logged per epoch.
func (s *AcquisitionService) annotate(epochs iter.Seq[models.Epoch], rec models.AcquisitionRecord) {
	timed := make(map[string]bool, len(rec.Epochs))
	for _, et := range rec.Epochs {
		timed[et.ID] = true
	}
	loc, err := time.LoadLocation(s.session.Timezone)
	if err != nil {
		loc = time.UTC
	}
	bounds := models.TimingSample{Start: rec.Start, End: rec.End}
	for ep := range epochs {
		if !timed[ep.ID] {
			continue
		}
		path := dataset.Open(ep.Path).SessionPath()
		if err := acquisition.AnnotateSession(path, bounds, loc); err != nil {
			s.log.Warnw("session_annotation_failed", "epoch", ep.ID, "err", err)
		}
	}
}

// readInputs returns the rig and session documents of the first epoch carrying both.
func readInputs(epochs iter.Seq[models.Epoch]) (models.Rig, models.Session, error) {
	for ep := range epochs {
		d := dataset.Open(ep.Path)
		rig, err := d.Rig()
		if err != nil {
			continue
		}
		sess, err := d.Session()
		if err != nil {
			continue
		}
		return rig, sess, nil
	}
	return models.Rig{}, models.Session{}, ErrMissingInputs
}

// countingTiming counts per-epoch timing failures.
type countingTiming struct {
	acquisition.TimingSource
	metrics *metrics.Metrics
}

func (c countingTiming) Extract(ep models.Epoch) (models.TimingSample, error) {
	ts, err := c.TimingSource.Extract(ep)
	if err != nil && c.metrics != nil {
		c.metrics.EpochSkipped()
	}
	return ts, err
}
