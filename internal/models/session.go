package models

import "time"

// Mode is the operator session state.
type Mode int

const (
	// ModeMonitoring displays telemetry passively; no commands are solicited.
	ModeMonitoring Mode = iota
	// ModeCommandLine solicits one operator command per loop iteration.
	ModeCommandLine
)

func (m Mode) String() string {
	switch m {
	case ModeMonitoring:
		return "MONITORING"
	case ModeCommandLine:
		return "COMMAND_LINE"
	default:
		return "UNKNOWN"
	}
}

// Experiment is one numbered recording run. The per-channel counters give
// each appended sample its monotonically increasing index.
type Experiment struct {
	ID              int       `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	TempSampleCount uint64    `json:"temp_sample_count"`
	RotSampleCount  uint64    `json:"rot_sample_count"`
}

// SessionStatus is the read-only snapshot published for the observation API.
type SessionStatus struct {
	Mode            string    `json:"mode"`
	Recording       bool      `json:"recording"`
	ExperimentID    int       `json:"experiment_id,omitempty"`
	TempSampleCount uint64    `json:"temp_sample_count"`
	RotSampleCount  uint64    `json:"rot_sample_count"`
	LastLine        string    `json:"last_line,omitempty"`
	LastLineAt      time.Time `json:"last_line_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}
