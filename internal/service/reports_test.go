package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fip_qc/internal/models"
)

// fakeRunRepo is a minimal in-memory stand-in for repository.RunRepo.
type fakeRunRepo struct {
	// captured inputs
	gotFrom    time.Time
	gotTo      time.Time
	gotSession string

	// configured outputs
	runs []models.QCRun
	err  error

	saved []models.QCRun
	calls int
}

func (f *fakeRunRepo) Save(ctx context.Context, run models.QCRun) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, run)
	return nil
}

func (f *fakeRunRepo) Get(ctx context.Context, id string) (*models.QCRun, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range append(f.runs, f.saved...) {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRunRepo) List(ctx context.Context, from, to time.Time, session string) ([]models.QCRun, error) {
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotSession = session
	return f.runs, f.err
}

func (f *fakeRunRepo) Latest(ctx context.Context) (*models.QCRun, error) {
	if len(f.saved) == 0 {
		return nil, f.err
	}
	last := f.saved[len(f.saved)-1]
	return &last, nil
}

func fixedZone(name string, offsetSec int) *time.Location {
	return time.FixedZone(name, offsetSec)
}

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   time.Date(2025, time.August, 1, 12, 34, 56, 0, fixedZone("UTC+3", 3*3600)),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 9, 34, 56, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	fromLocal := time.Date(2025, time.September, 10, 10, 0, 0, 0, fixedZone("UTC+2", 2*3600))
	toUTC := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      RunFilter
		want    RunFilter
		wantErr error
	}{
		{
			name: "all zero/empty ok",
			in:   RunFilter{},
			want: RunFilter{},
		},
		{
			name: "from after to -> error",
			in: RunFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
			},
			wantErr: errInvalidTimeRange,
		},
		{
			name: "normalize tz and session",
			in:   RunFilter{From: fromLocal, To: toUTC, Session: "  /data/s1 "},
			want: RunFilter{
				From:    time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC),
				To:      toUTC,
				Session: "/data/s1",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := normalizeAndValidateFilter(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v; got %v", tc.wantErr, err)
			}
			if !got.From.Equal(tc.want.From) || !got.To.Equal(tc.want.To) || got.Session != tc.want.Session {
				t.Fatalf("got %+v; want %+v", got, tc.want)
			}
		})
	}
}

func TestReportService_ListRuns_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	repo := &fakeRunRepo{runs: []models.QCRun{{ID: "1"}}}
	svc := NewReportService(repo)

	from := time.Date(2025, 7, 18, 12, 0, 0, 0, fixedZone("PDT", -7*3600))
	got, err := svc.ListRuns(context.Background(), RunFilter{From: from, Session: " /s "})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(got) != 1 || repo.calls != 1 {
		t.Fatalf("unexpected result %v after %d calls", got, repo.calls)
	}
	if repo.gotFrom.Location() != time.UTC || !repo.gotFrom.Equal(from) {
		t.Fatalf("from not normalized: %v", repo.gotFrom)
	}
	if !repo.gotTo.IsZero() || repo.gotSession != "/s" {
		t.Fatalf("unexpected params to=%v session=%q", repo.gotTo, repo.gotSession)
	}
}

func TestReportService_ListRuns_InvalidRangeSkipsRepo(t *testing.T) {
	t.Parallel()

	repo := &fakeRunRepo{}
	_, err := NewReportService(repo).ListRuns(context.Background(), RunFilter{
		From: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("repo should not be called, got %d calls", repo.calls)
	}
}

func TestReportService_GetRun(t *testing.T) {
	t.Parallel()

	repo := &fakeRunRepo{runs: []models.QCRun{{ID: "abc", Failed: 2}}}
	svc := NewReportService(repo)

	run, err := svc.GetRun(context.Background(), " abc ")
	if err != nil || run.Failed != 2 {
		t.Fatalf("GetRun: %+v, %v", run, err)
	}
	if _, err := svc.GetRun(context.Background(), "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}

	repo.err = errors.New("db down")
	if _, err := svc.GetRun(context.Background(), "abc"); err == nil || errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected repo error, got %v", err)
	}
}
