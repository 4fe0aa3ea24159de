package session

import (
	"sync"
	"time"

	"solartap/internal/models"
)

// Status is the snapshot the observation API reads. The loop goroutine
// writes it; HTTP handler goroutines read it concurrently.
type Status struct {
	mu   sync.RWMutex
	snap models.SessionStatus
}

func NewStatus() *Status {
	return &Status{snap: models.SessionStatus{
		Mode:      models.ModeMonitoring.String(),
		UpdatedAt: time.Now().UTC(),
	}}
}

// Snapshot returns the latest published session state.
func (st *Status) Snapshot() models.SessionStatus {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snap
}

// update rebuilds the snapshot from the session. An empty line keeps the
// previous last-seen telemetry.
func (st *Status) update(s *Session, line string) {
	now := time.Now().UTC()

	st.mu.Lock()
	defer st.mu.Unlock()

	snap := models.SessionStatus{
		Mode:       s.mode.String(),
		LastLine:   st.snap.LastLine,
		LastLineAt: st.snap.LastLineAt,
		UpdatedAt:  now,
	}
	if line != "" {
		snap.LastLine = line
		snap.LastLineAt = now
	}
	if s.active != nil {
		snap.Recording = true
		snap.ExperimentID = s.active.ID
		snap.TempSampleCount = s.active.TempSampleCount
		snap.RotSampleCount = s.active.RotSampleCount
	}
	st.snap = snap
}
