package handlers

import (
	"context"

	"solartap/internal/models"
	"solartap/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockMonitoring struct {
	status models.SessionStatus
	err    error
}

func (m *mockMonitoring) GetStatus(context.Context) (models.SessionStatus, error) {
	return m.status, m.err
}

type mockEventLog struct {
	events     []models.SessionEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.SessionEvent, error) {
	m.lastFilter = f
	return m.events, m.err
}

type mockExperiments struct {
	runs []models.ExperimentRun
	err  error
}

func (m *mockExperiments) List(context.Context) ([]models.ExperimentRun, error) {
	return m.runs, m.err
}

// newTestRouter builds the full route set around mocked services.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}
