package repository

import (
	"context"
	"database/sql"
	"time"

	"solartap/internal/models"
)

type ExperimentSQLite struct {
	db *sql.DB
}

func NewExperimentSQLite(db *sql.DB) *ExperimentSQLite {
	return &ExperimentSQLite{db: db}
}

const (
	insertRunSQL = `
		INSERT INTO experiments (experiment_id, started_at, temp_samples, rot_samples)
		VALUES (?, ?, ?, ?)
	`

	// Finish closes the open run of the experiment; re-enabling the same id
	// starts a fresh row, so only the row without stopped_at matches.
	finishRunSQL = `
		UPDATE experiments
		SET stopped_at = ?, temp_samples = ?, rot_samples = ?
		WHERE experiment_id = ? AND stopped_at IS NULL
	`

	selectRunsSQL = `
		SELECT run_id, experiment_id, started_at, stopped_at, temp_samples, rot_samples
		FROM experiments ORDER BY started_at ASC
	`
)

// Start registers a new recording run.
func (r *ExperimentSQLite) Start(ctx context.Context, run models.ExperimentRun) error {
	startedAt := run.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	} else {
		startedAt = startedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertRunSQL,
		run.ExperimentID,
		startedAt,
		run.TempSamples,
		run.RotSamples,
	)
	return err
}

// Finish records the stop time and final sample counts of the open run.
func (r *ExperimentSQLite) Finish(ctx context.Context, experimentID int, stoppedAt time.Time, tempSamples, rotSamples uint64) error {
	_, err := r.db.ExecContext(ctx, finishRunSQL,
		stoppedAt.UTC(),
		tempSamples,
		rotSamples,
		experimentID,
	)
	return err
}

// List returns all recorded runs, oldest first.
func (r *ExperimentSQLite) List(ctx context.Context) ([]models.ExperimentRun, error) {
	rows, err := r.db.QueryContext(ctx, selectRunsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ExperimentRun, 0, 16)
	for rows.Next() {
		var run models.ExperimentRun
		var stoppedAt sql.NullTime
		if err := rows.Scan(
			&run.RunID,
			&run.ExperimentID,
			&run.StartedAt,
			&stoppedAt,
			&run.TempSamples,
			&run.RotSamples,
		); err != nil {
			return nil, err
		}
		run.StartedAt = run.StartedAt.UTC()
		if stoppedAt.Valid {
			t := stoppedAt.Time.UTC()
			run.StoppedAt = &t
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
