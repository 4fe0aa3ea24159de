package service

import (
	"context"
	"time"

	"solartap/internal/models"
)

type MonitoringService struct {
	status StatusSource
}

func NewMonitoringService(status StatusSource) *MonitoringService {
	return &MonitoringService{status: status}
}

// GetStatus returns the latest published session snapshot. Before the loop
// publishes anything it returns a baseline monitoring snapshot.
func (s *MonitoringService) GetStatus(ctx context.Context) (models.SessionStatus, error) {
	if s.status == nil {
		return baselineStatus(), nil
	}
	snap := s.status.Snapshot()
	if snap.Mode == "" {
		return baselineStatus(), nil
	}
	return snap, nil
}

func baselineStatus() models.SessionStatus {
	return models.SessionStatus{
		Mode:      models.ModeMonitoring.String(),
		UpdatedAt: time.Now().UTC(),
	}
}
