package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"solartap/internal/device"
	"solartap/internal/logger"
	"solartap/internal/models"

	"github.com/google/uuid"
)

// ErrQuit is returned by Dispatch when the operator asked to terminate.
// The session loop translates it into a clean exit with code 0.
var ErrQuit = errors.New("quit requested")

// Session is the slice of session state the dispatcher mutates.
type Session interface {
	// StartExperiment activates recording for the given experiment id,
	// resetting the per-channel counters. It does not change the mode.
	StartExperiment(ctx context.Context, id int)
	// EnterMonitoring leaves command mode.
	EnterMonitoring(ctx context.Context)
}

// Builder invokes the external firmware build tool.
type Builder interface {
	Compile(ctx context.Context) error
	Flash(ctx context.Context) error
}

// EventSink receives best-effort audit events. May be nil.
type EventSink interface {
	Append(ctx context.Context, e models.SessionEvent) error
}

// Dispatcher executes parsed commands against the session and the device.
//
// Only two error classes escape Dispatch: ErrQuit and transport faults from
// device writes. Everything else (unknown verbs, build tool failures) is
// reported to the operator here and swallowed, so the loop keeps running.
type Dispatcher struct {
	link    device.Link
	builder Builder
	events  EventSink
	log     *logger.Logger
	out     io.Writer
}

func NewDispatcher(link device.Link, builder Builder, events EventSink, log *logger.Logger, out io.Writer) *Dispatcher {
	return &Dispatcher{link: link, builder: builder, events: events, log: log, out: out}
}

func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command, sess Session) error {
	switch cmd.Kind {
	case KindEmpty:
		return nil

	case KindUnknown:
		fmt.Fprintf(d.out, "unknown command: %q\n", cmd.Raw)
		return nil

	case KindQuit:
		return ErrQuit

	case KindEnterMonitor:
		sess.EnterMonitoring(ctx)
		fmt.Fprintln(d.out, "monitoring (Ctrl-C for command mode)")
		return nil

	case KindEnableExperiment:
		sess.StartExperiment(ctx, cmd.ExperimentID)
		fmt.Fprintf(d.out, "recording experiment %d\n", cmd.ExperimentID)
		return nil

	case KindMotorInc:
		return d.writeDevice(ctx, "motor inc "+cmd.Arg)

	case KindMotorRot:
		return d.writeDevice(ctx, "motor rot "+cmd.Arg)

	case KindShaderOpen:
		return d.writeDevice(ctx, "shader open")

	case KindShaderClose:
		return d.writeDevice(ctx, "shader close")

	case KindCompile:
		d.runBuild(ctx, "compile")
		return nil

	case KindFlash:
		d.runBuild(ctx, "flash")
		return nil

	default:
		fmt.Fprintf(d.out, "unknown command: %q\n", cmd.Raw)
		return nil
	}
}

// writeDevice forwards raw command text to the firmware. A write failure is
// a transport fault and propagates so the loop can terminate.
func (d *Dispatcher) writeDevice(ctx context.Context, text string) error {
	if err := d.link.WriteCommand([]byte(text)); err != nil {
		return fmt.Errorf("device write %q: %w", text, err)
	}
	d.appendEvent(ctx, models.EventCommand, "sent to device: "+text)
	return nil
}

// runBuild invokes the external build tool. Failures are reported, never
// fatal to the session.
func (d *Dispatcher) runBuild(ctx context.Context, name string) {
	if d.builder == nil {
		fmt.Fprintf(d.out, "%s: no build tool configured\n", name)
		return
	}
	run := d.builder.Compile
	if name == "flash" {
		run = d.builder.Flash
	}
	fmt.Fprintf(d.out, "running %s...\n", name)
	if err := run(ctx); err != nil {
		fmt.Fprintf(d.out, "%s failed: %v\n", name, err)
		d.log.Errorw("build tool failed", "step", name, "err", err)
		d.appendEvent(ctx, models.EventError, name+" failed: "+err.Error())
		return
	}
	fmt.Fprintf(d.out, "%s finished\n", name)
	d.appendEvent(ctx, models.EventCommand, name+" finished")
}

func (d *Dispatcher) appendEvent(ctx context.Context, typ, desc string) {
	if d.events == nil {
		return
	}
	err := d.events.Append(ctx, models.SessionEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
	})
	if err != nil {
		d.log.Warnw("audit event not persisted", "type", typ, "err", err)
	}
}
