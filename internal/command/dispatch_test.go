package command

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"solartap/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLink struct {
	writes   []string
	writeErr error
}

func (l *fakeLink) ReadLine() ([]byte, error) { return nil, nil }
func (l *fakeLink) WriteCommand(p []byte) error {
	if l.writeErr != nil {
		return l.writeErr
	}
	l.writes = append(l.writes, string(p))
	return nil
}
func (l *fakeLink) Close() error { return nil }

type fakeSession struct {
	started    []int
	monitoring int
}

func (s *fakeSession) StartExperiment(_ context.Context, id int) { s.started = append(s.started, id) }
func (s *fakeSession) EnterMonitoring(context.Context)           { s.monitoring++ }

type fakeBuilder struct {
	compileErr error
	flashErr   error
	compiles   int
	flashes    int
}

func (b *fakeBuilder) Compile(context.Context) error { b.compiles++; return b.compileErr }
func (b *fakeBuilder) Flash(context.Context) error   { b.flashes++; return b.flashErr }

func newTestDispatcher(link *fakeLink, builder *fakeBuilder) (*Dispatcher, *bytes.Buffer) {
	out := &bytes.Buffer{}
	d := NewDispatcher(link, builder, nil, logger.Get(logger.ErrorLevel), out)
	return d, out
}

func TestDispatch_MotorRot_WritesExactBytes(t *testing.T) {
	link := &fakeLink{}
	sess := &fakeSession{}
	d, _ := newTestDispatcher(link, &fakeBuilder{})

	err := d.Dispatch(context.Background(), Parse("motor rot -45.0"), sess)
	require.NoError(t, err)

	// Exactly one outbound write, verbatim, and no session side effects.
	assert.Equal(t, []string{"motor rot -45.0"}, link.writes)
	assert.Empty(t, sess.started)
	assert.Zero(t, sess.monitoring)
}

func TestDispatch_DeviceCommands(t *testing.T) {
	link := &fakeLink{}
	d, _ := newTestDispatcher(link, &fakeBuilder{})
	sess := &fakeSession{}
	ctx := context.Background()

	for _, raw := range []string{"motor inc 50", "shader open", "shader close"} {
		require.NoError(t, d.Dispatch(ctx, Parse(raw), sess))
	}
	assert.Equal(t, []string{"motor inc 50", "shader open", "shader close"}, link.writes)
}

func TestDispatch_Unknown_ReportsWithoutSideEffects(t *testing.T) {
	link := &fakeLink{}
	sess := &fakeSession{}
	d, out := newTestDispatcher(link, &fakeBuilder{})

	err := d.Dispatch(context.Background(), Parse("run"), sess)
	require.NoError(t, err)

	assert.Contains(t, out.String(), `unknown command: "run"`)
	assert.Empty(t, link.writes)
	assert.Empty(t, sess.started)
	assert.Zero(t, sess.monitoring)
}

func TestDispatch_Quit(t *testing.T) {
	d, _ := newTestDispatcher(&fakeLink{}, &fakeBuilder{})
	err := d.Dispatch(context.Background(), Parse("quit"), &fakeSession{})
	assert.ErrorIs(t, err, ErrQuit)
}

func TestDispatch_EnableExperiment(t *testing.T) {
	sess := &fakeSession{}
	d, out := newTestDispatcher(&fakeLink{}, &fakeBuilder{})

	require.NoError(t, d.Dispatch(context.Background(), Parse("enable experiment 7"), sess))
	assert.Equal(t, []int{7}, sess.started)
	assert.Contains(t, out.String(), "recording experiment 7")
}

func TestDispatch_EnterMonitor(t *testing.T) {
	sess := &fakeSession{}
	d, _ := newTestDispatcher(&fakeLink{}, &fakeBuilder{})

	require.NoError(t, d.Dispatch(context.Background(), Parse("monitor"), sess))
	assert.Equal(t, 1, sess.monitoring)
}

func TestDispatch_BuildFailure_IsNotFatal(t *testing.T) {
	builder := &fakeBuilder{compileErr: errors.New("exit status 2")}
	d, out := newTestDispatcher(&fakeLink{}, builder)

	err := d.Dispatch(context.Background(), Parse("compile"), &fakeSession{})
	require.NoError(t, err)
	assert.Equal(t, 1, builder.compiles)
	assert.Contains(t, out.String(), "compile failed")
}

func TestDispatch_Flash(t *testing.T) {
	builder := &fakeBuilder{}
	d, out := newTestDispatcher(&fakeLink{}, builder)

	require.NoError(t, d.Dispatch(context.Background(), Parse("flash"), &fakeSession{}))
	assert.Equal(t, 1, builder.flashes)
	assert.Contains(t, out.String(), "flash finished")
}

func TestDispatch_WriteFault_Propagates(t *testing.T) {
	link := &fakeLink{writeErr: errors.New("port gone")}
	d, _ := newTestDispatcher(link, &fakeBuilder{})

	err := d.Dispatch(context.Background(), Parse("shader open"), &fakeSession{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "port gone")
}
