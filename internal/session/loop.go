package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"solartap/internal/command"
	"solartap/internal/device"
	"solartap/internal/logger"
	"solartap/internal/models"
)

const exitFailure = 1

// Loop is the top-level session driver. Reader goroutines publish completed
// device lines and operator command lines onto channels; the loop alone
// selects over "device line ready", "command line ready" and "interrupt
// requested", so every Session mutation happens on one goroutine.
type Loop struct {
	sess       *Session
	link       device.Link
	disp       *command.Dispatcher
	interrupts <-chan os.Signal
	in         io.Reader
	out        io.Writer
	log        *logger.Logger

	prompted bool
}

func NewLoop(sess *Session, link device.Link, disp *command.Dispatcher, interrupts <-chan os.Signal, in io.Reader, out io.Writer, log *logger.Logger) *Loop {
	return &Loop{
		sess:       sess,
		link:       link,
		disp:       disp,
		interrupts: interrupts,
		in:         in,
		out:        out,
		log:        log,
	}
}

// Run drives the session until quit, a second interrupt in command mode, or
// a transport fault. It returns the process exit code; the error is non-nil
// only for the transport-fault case, the one failure allowed to unwind here.
func (l *Loop) Run(ctx context.Context) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErrs := l.startDeviceReader(ctx)
	cmds := l.startCommandReader(ctx)

	for {
		// The command arm stays nil outside command mode, so stray input
		// typed while monitoring is not consumed.
		var cmdArm <-chan string
		if l.sess.Mode() == models.ModeCommandLine {
			l.showPrompt()
			cmdArm = cmds
		}

		select {
		case <-ctx.Done():
			return 0, nil

		case err := <-readErrs:
			l.log.Errorw("device link failed", "err", err)
			return exitFailure, err

		case line := <-lines:
			l.handleTelemetry(ctx, line)

		case raw, ok := <-cmdArm:
			l.prompted = false
			if !ok {
				// Operator input closed; treat like quit.
				return 0, nil
			}
			err := l.disp.Dispatch(ctx, command.Parse(raw), l.sess)
			if errors.Is(err, command.ErrQuit) {
				return 0, nil
			}
			if err != nil {
				l.log.Errorw("device link failed", "err", err)
				return exitFailure, err
			}

		case <-l.interrupts:
			if l.handleInterrupt(ctx) {
				return 0, nil
			}
		}
	}
}

// handleTelemetry displays the line and offers it to the recorder in the
// same iteration it arrived, regardless of mode.
func (l *Loop) handleTelemetry(ctx context.Context, line string) {
	if l.prompted {
		fmt.Fprintln(l.out)
		l.prompted = false
	}
	fmt.Fprintln(l.out, line)
	l.sess.Record(ctx, line)
}

// handleInterrupt applies the interrupt rules. Deactivating the experiment
// strictly precedes any mode transition, so the final sample of a recording
// never races a mode flip. Returns true when the process should terminate.
func (l *Loop) handleInterrupt(ctx context.Context) bool {
	l.sess.StopExperiment(ctx, "interrupted")

	if l.sess.Mode() == models.ModeCommandLine {
		fmt.Fprintln(l.out)
		return true
	}
	l.sess.EnterCommandLine(ctx)
	l.prompted = false
	return false
}

func (l *Loop) showPrompt() {
	if !l.prompted {
		fmt.Fprint(l.out, ">> ")
		l.prompted = true
	}
}

// startDeviceReader polls the link. ReadLine is bounded by the link's read
// timeout, so the goroutine notices cancellation promptly; a nil line is a
// timeout, not an error.
func (l *Loop) startDeviceReader(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string, 16)
	errs := make(chan error, 1)
	go func() {
		for ctx.Err() == nil {
			line, err := l.link.ReadLine()
			if err != nil {
				errs <- fmt.Errorf("device link: %w", err)
				return
			}
			if line == nil {
				continue
			}
			select {
			case lines <- string(line):
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines, errs
}

// startCommandReader publishes operator lines. The channel is closed on EOF.
// A prompt abandoned by an interrupt is simply never received from again;
// the pending read parks here until the next command-mode iteration.
func (l *Loop) startCommandReader(ctx context.Context) <-chan string {
	cmds := make(chan string)
	go func() {
		defer close(cmds)
		sc := bufio.NewScanner(l.in)
		for sc.Scan() {
			select {
			case cmds <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return cmds
}
