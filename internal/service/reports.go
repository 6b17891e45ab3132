package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fip_qc/internal/models"
	"fip_qc/internal/repository"
)

type ReportService struct {
	runRepo repository.RunRepo
}

func NewReportService(runRepo repository.RunRepo) *ReportService {
	return &ReportService{runRepo: runRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	// ErrRunNotFound is returned by GetRun for unknown ids.
	ErrRunNotFound = errors.New("qc run not found")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f RunFilter) (RunFilter, error) {
	out := RunFilter{
		From:    normalizeToUTC(f.From),
		To:      normalizeToUTC(f.To),
		Session: strings.TrimSpace(f.Session),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return RunFilter{}, errInvalidTimeRange
	}
	return out, nil
}

func (s *ReportService) ListRuns(ctx context.Context, f RunFilter) ([]models.QCRun, error) {
	f, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.runRepo.List(ctx, f.From, f.To, f.Session)
}

func (s *ReportService) GetRun(ctx context.Context, id string) (models.QCRun, error) {
	run, err := s.runRepo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.QCRun{}, err
	}
	if run == nil {
		return models.QCRun{}, ErrRunNotFound
	}
	return *run, nil
}

func (s *ReportService) LatestRun(ctx context.Context) (*models.QCRun, error) {
	return s.runRepo.Latest(ctx)
}
