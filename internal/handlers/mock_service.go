package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"fip_qc/internal/models"
	"fip_qc/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockQC struct {
	runs         []models.QCRun
	err          error
	lastSession  string
	lastOperator int
	calls        int
}

func (m *mockQC) RunSession(ctx context.Context, sessionPath string) ([]models.QCRun, error) {
	m.calls++
	m.lastSession = sessionPath
	m.lastOperator, _ = service.OperatorFromContext(ctx)
	return m.runs, m.err
}
func (m *mockQC) RunEpoch(ctx context.Context, sessionPath string, ep models.Epoch) (models.QCRun, error) {
	m.calls++
	m.lastSession = sessionPath
	if len(m.runs) == 0 {
		return models.QCRun{}, m.err
	}
	return m.runs[0], m.err
}

type mockAcquisition struct {
	rec          models.AcquisitionRecord
	stored       *models.AcquisitionRecord
	mapErr       error
	getErr       error
	lastSession  string
	lastOperator int
}

func (m *mockAcquisition) MapSession(ctx context.Context, sessionPath string) (models.AcquisitionRecord, error) {
	m.lastSession = sessionPath
	m.lastOperator, _ = service.OperatorFromContext(ctx)
	return m.rec, m.mapErr
}
func (m *mockAcquisition) GetAcquisition(ctx context.Context, sessionPath string) (*models.AcquisitionRecord, error) {
	m.lastSession = sessionPath
	return m.stored, m.getErr
}

type mockReports struct {
	mu         sync.Mutex
	runs       []models.QCRun
	run        models.QCRun
	latest     *models.QCRun
	err        error
	lastFilter service.RunFilter
	lastID     string
}

func (m *mockReports) ListRuns(ctx context.Context, f service.RunFilter) ([]models.QCRun, error) {
	m.lastFilter = f
	return m.runs, m.err
}
func (m *mockReports) GetRun(ctx context.Context, id string) (models.QCRun, error) {
	m.lastID = id
	return m.run, m.err
}
func (m *mockReports) LatestRun(ctx context.Context) (*models.QCRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest, m.err
}

func (m *mockReports) setLatest(run *models.QCRun) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = run
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
