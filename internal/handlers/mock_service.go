package handlers

import (
	"context"
	"net/http"

	"greenhouse_sim/internal/models"
	"greenhouse_sim/internal/service"

	"github.com/gin-gonic/gin"
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

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSimulation struct {
	annual  models.AnnualSimulationResult
	day     models.DaySimulationResult
	err     error
	lastReq service.SimulationRequest
	lastDay service.DayRequest
}

func (m *mockSimulation) Simulate(_ context.Context, req service.SimulationRequest) (models.AnnualSimulationResult, error) {
	m.lastReq = req
	return m.annual, m.err
}
func (m *mockSimulation) SimulateDay(_ context.Context, req service.DayRequest) (models.DaySimulationResult, error) {
	m.lastDay = req
	return m.day, m.err
}

type mockOptimizer struct {
	points    []models.SweepPoint
	run       models.SweepRun
	err       error
	lastOwner int
	lastReq   service.SweepRequest
}

func (m *mockOptimizer) Sweep(ctx context.Context, ownerID int, req service.SweepRequest, onPoint func(models.SweepPoint)) (models.SweepRun, error) {
	m.lastOwner = ownerID
	m.lastReq = req
	for _, p := range m.points {
		if ctx.Err() != nil {
			return models.SweepRun{}, ctx.Err()
		}
		if onPoint != nil {
			onPoint(p)
		}
	}
	run := m.run
	if run.OwnerID == 0 {
		run.OwnerID = ownerID
	}
	return run, m.err
}

type mockHistory struct {
	runs       []models.SweepRun
	run        models.SweepRun
	err        error
	lastFilter service.HistoryFilter
	lastOwner  int
	lastID     string
}

func (m *mockHistory) List(_ context.Context, f service.HistoryFilter) ([]models.SweepRun, error) {
	m.lastFilter = f
	return m.runs, m.err
}
func (m *mockHistory) Get(_ context.Context, ownerID int, id string) (models.SweepRun, error) {
	m.lastOwner = ownerID
	m.lastID = id
	return m.run, m.err
}

type mockCatalog struct {
	snap service.CatalogSnapshot
}

func (m *mockCatalog) Snapshot(context.Context) service.CatalogSnapshot { return m.snap }

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
