package models

import "time"

// Session event types persisted to the audit log.
const (
	EventModeChange      = "MODE_CHANGE"
	EventExperimentStart = "EXPERIMENT_START"
	EventExperimentStop  = "EXPERIMENT_STOP"
	EventCommand         = "COMMAND"
	EventError           = "ERROR"
)

// SessionEvent is a single audit log entry.
type SessionEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // MODE_CHANGE | EXPERIMENT_START | EXPERIMENT_STOP | COMMAND | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// ExperimentRun is one row of the experiment registry: a recording run of a
// numbered experiment with its final per-channel sample counts.
type ExperimentRun struct {
	RunID        int64      `json:"run_id"`
	ExperimentID int        `json:"experiment_id"`
	StartedAt    time.Time  `json:"started_at"`
	StoppedAt    *time.Time `json:"stopped_at,omitempty"`
	TempSamples  uint64     `json:"temp_samples"`
	RotSamples   uint64     `json:"rot_samples"`
}
