package repository

import (
	"context"
	"database/sql"
	"time"

	"solartap/internal/models"
)

// EventRepo is the append-only session audit log.
type EventRepo interface {
	Append(ctx context.Context, e models.SessionEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.SessionEvent, error)
}

// ExperimentRepo is the registry of recording runs.
type ExperimentRepo interface {
	Start(ctx context.Context, run models.ExperimentRun) error
	Finish(ctx context.Context, experimentID int, stoppedAt time.Time, tempSamples, rotSamples uint64) error
	List(ctx context.Context) ([]models.ExperimentRun, error)
}

type Repository struct {
	Events      EventRepo
	Experiments ExperimentRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Events:      NewEventSQLite(db),
		Experiments: NewExperimentSQLite(db),
	}
}
