package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"fip_qc/internal/models"
	"fip_qc/internal/repository"
)

func TestAcquisitionSQLite_Save_UpsertsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewAcquisitionSQLite(db)
	rec := models.AcquisitionRecord{
		SessionPath: "/data/s1",
		SubjectID:   "mouse_42",
		Start:       time.Date(2025, 7, 18, 19, 3, 19, 0, time.UTC),
		End:         time.Date(2025, 7, 18, 19, 3, 30, 0, time.UTC),
	}
	body, _ := json.Marshal(rec)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO acquisitions")).
		WithArgs("/data/s1", "mouse_42", rec.Start, rec.End, string(body), 7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), rec, 7); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAcquisitionSQLite_Save_RequiresSession(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	if err := repository.NewAcquisitionSQLite(db).Save(context.Background(), models.AcquisitionRecord{}, 0); err == nil {
		t.Fatalf("Save() expected error for missing session path")
	}
}

func TestAcquisitionSQLite_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewAcquisitionSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT session, record FROM acquisitions WHERE session = ?")).
		WithArgs("/data/s1").
		WillReturnRows(sqlmock.NewRows([]string{"session", "record"}).
			AddRow("/data/s1", `{"subject_id":"mouse_42","acquisition_start_time":"2025-07-18T19:03:19Z"}`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT session, record FROM acquisitions WHERE session = ?")).
		WithArgs("/data/none").
		WillReturnError(sql.ErrNoRows)

	rec, err := repo.Load(context.Background(), "/data/s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rec == nil || rec.SubjectID != "mouse_42" || rec.SessionPath != "/data/s1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.Start.Equal(time.Date(2025, 7, 18, 19, 3, 19, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", rec.Start)
	}

	rec, err = repo.Load(context.Background(), "/data/none")
	if err != nil || rec != nil {
		t.Fatalf("want (nil, nil), got (%+v, %v)", rec, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
