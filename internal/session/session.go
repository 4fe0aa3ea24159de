// Package session owns the operator session: its mode, the active
// experiment, and the loop that drives telemetry and command handling.
package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"solartap/internal/logger"
	"solartap/internal/models"
	"solartap/internal/recorder"

	"github.com/google/uuid"
)

// EventSink receives best-effort audit events. May be nil.
type EventSink interface {
	Append(ctx context.Context, e models.SessionEvent) error
}

// ExperimentStore registers recording runs. May be nil.
type ExperimentStore interface {
	Start(ctx context.Context, run models.ExperimentRun) error
	Finish(ctx context.Context, experimentID int, stoppedAt time.Time, tempSamples, rotSamples uint64) error
}

// Session is the single mutable session state. Only the loop goroutine
// mutates it. Mode and the active experiment are independent axes: entering
// or leaving command mode never starts or stops recording.
type Session struct {
	mode      models.Mode
	helpShown bool
	active    *models.Experiment

	rec         *recorder.Recorder
	events      EventSink
	experiments ExperimentStore
	status      *Status
	log         *logger.Logger
	out         io.Writer
}

func New(rec *recorder.Recorder, events EventSink, experiments ExperimentStore, status *Status, log *logger.Logger, out io.Writer) *Session {
	return &Session{
		mode:        models.ModeMonitoring,
		rec:         rec,
		events:      events,
		experiments: experiments,
		status:      status,
		log:         log,
		out:         out,
	}
}

func (s *Session) Mode() models.Mode { return s.mode }

// Active returns the experiment currently recording, or nil.
func (s *Session) Active() *models.Experiment { return s.active }

// EnterCommandLine switches to command mode. The static help text is shown
// on the first entry of the process lifetime, then never again.
func (s *Session) EnterCommandLine(ctx context.Context) {
	if s.mode == models.ModeCommandLine {
		return
	}
	s.mode = models.ModeCommandLine
	if !s.helpShown {
		s.helpShown = true
		fmt.Fprint(s.out, HelpText)
	}
	s.appendEvent(ctx, models.EventModeChange, "entered command mode")
	s.publishStatus("")
}

// EnterMonitoring leaves command mode.
func (s *Session) EnterMonitoring(ctx context.Context) {
	if s.mode == models.ModeMonitoring {
		return
	}
	s.mode = models.ModeMonitoring
	s.appendEvent(ctx, models.EventModeChange, "entered monitoring mode")
	s.publishStatus("")
}

// StartExperiment activates recording for the given id. A previously active
// experiment is finished first. Counters are seeded from any samples already
// on disk for the id so its index sequence continues. Mode is not touched.
func (s *Session) StartExperiment(ctx context.Context, id int) {
	s.StopExperiment(ctx, "superseded")

	exp := &models.Experiment{ID: id, StartedAt: time.Now().UTC()}
	s.rec.SeedCounters(exp)
	s.active = exp

	if s.experiments != nil {
		err := s.experiments.Start(ctx, models.ExperimentRun{
			ExperimentID: id,
			StartedAt:    exp.StartedAt,
			TempSamples:  exp.TempSampleCount,
			RotSamples:   exp.RotSampleCount,
		})
		if err != nil {
			s.log.Warnw("experiment run not registered", "id", id, "err", err)
		}
	}
	s.appendEvent(ctx, models.EventExperimentStart, fmt.Sprintf("experiment %d recording", id))
	s.publishStatus("")
}

// StopExperiment deactivates the current experiment, if any. Samples already
// written stay on disk untouched.
func (s *Session) StopExperiment(ctx context.Context, reason string) {
	if s.active == nil {
		return
	}
	exp := s.active
	s.active = nil

	now := time.Now().UTC()
	if s.experiments != nil {
		err := s.experiments.Finish(ctx, exp.ID, now, exp.TempSampleCount, exp.RotSampleCount)
		if err != nil {
			s.log.Warnw("experiment run not finalized", "id", exp.ID, "err", err)
		}
	}
	s.appendEvent(ctx, models.EventExperimentStop,
		fmt.Sprintf("experiment %d stopped (%s), %d temp / %d rot samples",
			exp.ID, reason, exp.TempSampleCount, exp.RotSampleCount))
	s.publishStatus("")
}

// Record offers one telemetry line to the recorder. A write failure costs at
// most that sample: it is reported and the session keeps running.
func (s *Session) Record(ctx context.Context, line string) {
	if err := s.rec.Offer(line, s.active); err != nil {
		s.log.Errorw("sample not recorded", "err", err)
		s.appendEvent(ctx, models.EventError, "sample not recorded: "+err.Error())
	}
	s.publishStatus(line)
}

func (s *Session) appendEvent(ctx context.Context, typ, desc string) {
	if s.events == nil {
		return
	}
	err := s.events.Append(ctx, models.SessionEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
	})
	if err != nil {
		s.log.Warnw("audit event not persisted", "type", typ, "err", err)
	}
}

func (s *Session) publishStatus(line string) {
	if s.status == nil {
		return
	}
	s.status.update(s, line)
}
