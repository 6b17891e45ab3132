package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fip_qc/internal/acquisition"
	"fip_qc/internal/epoch"
	"fip_qc/internal/models"
	"fip_qc/internal/service"
)

func authed(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
	var m map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["status"] != statusOK {
		t.Fatalf("unexpected body: %v", m)
	}
}

func TestQCHandler_RunSession(t *testing.T) {
	qc := &mockQC{runs: []models.QCRun{
		{ID: "a", Epoch: "fip_1", Passed: 20},
		{ID: "b", Epoch: "fip_2", Passed: 18, Failed: 2},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: 7}, QC: qc}
	r := newTestRouter(s)

	// requires auth
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/qc", bytes.NewBufferString(`{"session":"/x"}`)))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	// missing session → 400
	w = authed(r, http.MethodPost, "/api/v1/qc", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing session, got %d", w.Code)
	}
	if qc.calls != 0 {
		t.Fatalf("service must not be called on bad body")
	}

	w = authed(r, http.MethodPost, "/api/v1/qc", `{"session":"  /data/000000_2025-07-18T190319 "}`)
	if w.Code != http.StatusOK {
		t.Fatalf("qc status=%d, body=%s", w.Code, w.Body.String())
	}
	if qc.lastSession != "/data/000000_2025-07-18T190319" {
		t.Fatalf("session not trimmed: %q", qc.lastSession)
	}
	var out struct {
		OK   bool         `json:"ok"`
		Runs []RunSummary `json:"runs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.OK || len(out.Runs) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if !out.Runs[0].OK || out.Runs[1].OK || out.Runs[1].Failed != 2 {
		t.Fatalf("unexpected summaries: %+v", out.Runs)
	}
}

func TestSessionErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: /nope", epoch.ErrInvalidSessionPath), http.StatusBadRequest},
		{fmt.Errorf("%w: /empty", service.ErrNoEpochs), http.StatusNotFound},
		{fmt.Errorf("/s: %w", acquisition.ErrNoValidEpochs), http.StatusUnprocessableEntity},
		{fmt.Errorf("/s: %w", service.ErrMissingInputs), http.StatusUnprocessableEntity},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := sessionErrorStatus(tc.err); got != tc.want {
			t.Fatalf("%v: got %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestQCHandler_ErrorMapping(t *testing.T) {
	qc := &mockQC{err: fmt.Errorf("%w: /nope", epoch.ErrInvalidSessionPath)}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, QC: qc})

	w := authed(r, http.MethodPost, "/api/v1/qc", `{"session":"/nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	qc.err = errors.New("sqlite: database is locked")
	w = authed(r, http.MethodPost, "/api/v1/qc", `{"session":"/s"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var m map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["error"] != errRunQC {
		t.Fatalf("internal error must not leak cause, got %q", m["error"])
	}
}

func TestAcquisitionHandlers(t *testing.T) {
	start := time.Date(2025, 7, 18, 19, 3, 19, 0, time.UTC)
	acq := &mockAcquisition{rec: models.AcquisitionRecord{
		SubjectID: "000000",
		Start:     start,
		End:       start.Add(10 * time.Minute),
	}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Acquisition: acq})

	w := authed(r, http.MethodPost, "/api/v1/acquisition", `{"session":"/data/s1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("map status=%d, body=%s", w.Code, w.Body.String())
	}
	var rec models.AcquisitionRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.SubjectID != "000000" || !rec.Start.Equal(start) {
		t.Fatalf("unexpected record: %+v", rec)
	}

	acq.mapErr = fmt.Errorf("/data/s1: %w", acquisition.ErrNoValidEpochs)
	w = authed(r, http.MethodPost, "/api/v1/acquisition", `{"session":"/data/s1"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	// GET without session → 400
	w = authed(r, http.MethodGet, "/api/v1/acquisition", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	// GET unknown → 404
	w = authed(r, http.MethodGet, "/api/v1/acquisition?session=/data/s2", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if acq.lastSession != "/data/s2" {
		t.Fatalf("GetAcquisition got %q", acq.lastSession)
	}

	acq.stored = &acq.rec
	w = authed(r, http.MethodGet, "/api/v1/acquisition?session=/data/s1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status=%d, body=%s", w.Code, w.Body.String())
	}
}
