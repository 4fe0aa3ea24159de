package service

import (
	"context"
	"time"

	"solartap/internal/models"
	"solartap/internal/repository"
)

// Monitoring exposes the read-only session snapshot.
type Monitoring interface {
	GetStatus(ctx context.Context) (models.SessionStatus, error)
}

// EventLog exposes the append-only audit log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SessionEvent, error)
}

// Experiments exposes the registry of recording runs.
type Experiments interface {
	List(ctx context.Context) ([]models.ExperimentRun, error)
}

// LogFilter narrows audit log queries by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "MODE_CHANGE", "EXPERIMENT_START", "EXPERIMENT_STOP", "COMMAND", "ERROR"
}

// StatusSource supplies the live session snapshot (the loop publishes it).
type StatusSource interface {
	Snapshot() models.SessionStatus
}

// Service aggregates all sub-services for the observation API.
type Service struct {
	Monitoring
	EventLog
	Experiments
}

func NewService(repos *repository.Repository, status StatusSource) *Service {
	return &Service{
		Monitoring:  NewMonitoringService(status),
		EventLog:    NewEventLogService(repos.Events),
		Experiments: NewExperimentsService(repos.Experiments),
	}
}
