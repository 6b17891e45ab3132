package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"fip_qc/internal/models"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newRunMock(t *testing.T) (*RunSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRunSQLite(db), mock
}

var runColumns = []string{"id", "session", "epoch", "started_at", "finished_at", "passed", "failed", "skipped", "errored", "operator_id"}

func TestRunSave_InsertsRunAndResultsInTx(t *testing.T) {
	t.Parallel()
	repo, mock := newRunMock(t)

	started := time.Date(2025, 7, 18, 12, 0, 0, 0, time.FixedZone("PDT", -7*3600))
	value := 200.0
	run := models.QCRun{
		ID:         "run-1",
		Session:    "/data/s1",
		Epoch:      "fip_2025-07-18T19-03-19",
		StartedAt:  started,
		Passed:     1,
		Failed:     1,
		OperatorID: 7,
		Results: []models.QCResultRecord{
			{Suite: "signal_green", Check: "sensor_floor", Status: "pass", Message: "ok", Value: &value, Artifact: "/tmp/a.png"},
			{Suite: "signal_green", Check: "sudden_change", Target: "Fiber_0", Status: "fail", Message: "step"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).
		WithArgs("run-1", "/data/s1", run.Epoch, started.UTC(), started.UTC(), 1, 1, 0, 0, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertResultSQL)).
		WithArgs("run-1", 0, "signal_green", "sensor_floor", "", "pass", "ok", sql.NullFloat64{Float64: 200, Valid: true}, "/tmp/a.png").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertResultSQL)).
		WithArgs("run-1", 1, "signal_green", "sudden_change", "Fiber_0", "fail", "step", sql.NullFloat64{}, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Save(ctx(t), run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestRunSave_ResultErrorRollsBack(t *testing.T) {
	t.Parallel()
	repo, mock := newRunMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO qc_runs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO qc_results").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Save(ctx(t), models.QCRun{Session: "/s", Epoch: "e", Results: []models.QCResultRecord{{Suite: "s"}}})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected disk full error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestRunList_WithFilters(t *testing.T) {
	t.Parallel()
	repo, mock := newRunMock(t)

	from := time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	query := selectRunColumns + ` WHERE started_at >= ? AND started_at <= ? AND session = ? ORDER BY started_at ASC`

	rows := sqlmock.NewRows(runColumns).
		AddRow("a", "/s", "fip_1", from.Add(time.Hour), from.Add(time.Hour+time.Minute), 10, 0, 1, 0, 7).
		AddRow("b", "/s", "fip_2", from.Add(2*time.Hour), from.Add(2*time.Hour+time.Minute), 9, 1, 1, 0, 0)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(from, to, "/s").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), from, to, " /s ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].Failed != 1 || got[0].OperatorID != 7 {
		t.Fatalf("unexpected runs: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestRunList_NoFilters(t *testing.T) {
	t.Parallel()
	repo, mock := newRunMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectRunColumns + ` ORDER BY started_at ASC`)).
		WillReturnRows(sqlmock.NewRows(runColumns))

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty, got %d", len(got))
	}
}

func TestRunGet(t *testing.T) {
	tests := []struct {
		name    string
		expect  func(sqlmock.Sqlmock)
		wantNil bool
		wantErr bool
		wantRes int
	}{
		{
			name: "found with results",
			expect: func(m sqlmock.Sqlmock) {
				now := time.Date(2025, 7, 18, 19, 0, 0, 0, time.UTC)
				m.ExpectQuery(regexp.QuoteMeta(selectRunColumns + " WHERE id = ?")).
					WithArgs("run-1").
					WillReturnRows(sqlmock.NewRows(runColumns).AddRow("run-1", "/s", "e", now, now, 1, 0, 1, 0, 3))
				m.ExpectQuery(regexp.QuoteMeta(selectResultsSQL)).
					WithArgs("run-1").
					WillReturnRows(sqlmock.NewRows([]string{"suite", "check_name", "target", "status", "message", "value", "artifact"}).
						AddRow("dataset", "min_duration", "", "pass", "ok", 1200.0, "").
						AddRow("metadata_red", "frame_rate", "", "skip", "no fps", nil, ""))
			},
			wantRes: 2,
		},
		{
			name: "not found",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT id").WithArgs("run-1").WillReturnError(sql.ErrNoRows)
			},
			wantNil: true,
		},
		{
			name: "query error",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT id").WithArgs("run-1").WillReturnError(errors.New("locked"))
			},
			wantNil: true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRunMock(t)
			tt.expect(mock)

			run, err := repo.Get(ctx(t), "run-1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if (run == nil) != tt.wantNil {
				t.Fatalf("run = %+v, wantNil %v", run, tt.wantNil)
			}
			if run != nil {
				if len(run.Results) != tt.wantRes {
					t.Fatalf("want %d results, got %d", tt.wantRes, len(run.Results))
				}
				if run.Results[0].Value == nil || *run.Results[0].Value != 1200 {
					t.Fatalf("value not scanned: %+v", run.Results[0])
				}
				if run.Results[1].Value != nil {
					t.Fatalf("expected nil value, got %v", *run.Results[1].Value)
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("mock expectations: %v", err)
			}
		})
	}
}

func TestRunLatest_Empty(t *testing.T) {
	t.Parallel()
	repo, mock := newRunMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectRunColumns + " ORDER BY finished_at DESC LIMIT 1")).
		WillReturnRows(sqlmock.NewRows(runColumns))

	run, err := repo.Latest(ctx(t))
	if err != nil || run != nil {
		t.Fatalf("want (nil, nil), got (%+v, %v)", run, err)
	}
}
