package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readReply(t *testing.T, s *Simulator) string {
	t.Helper()
	for i := 0; i < 10; i++ {
		line, err := s.ReadLine()
		require.NoError(t, err)
		if line != nil {
			return string(line)
		}
	}
	t.Fatal("simulator produced no reply")
	return ""
}

func TestSimulator_MotorIncReportsRotation(t *testing.T) {
	s := NewSimulator(time.Millisecond)

	require.NoError(t, s.WriteCommand([]byte("motor inc 5")))
	assert.Equal(t, "R: 5", readReply(t, s))

	require.NoError(t, s.WriteCommand([]byte("motor inc -2")))
	assert.Equal(t, "R: 3", readReply(t, s))
}

func TestSimulator_MotorRotUsesStepResolution(t *testing.T) {
	s := NewSimulator(time.Millisecond)

	require.NoError(t, s.WriteCommand([]byte("motor rot 9.0")))
	assert.Equal(t, "R: 90", readReply(t, s))
}

func TestSimulator_ShaderAcks(t *testing.T) {
	s := NewSimulator(time.Millisecond)

	require.NoError(t, s.WriteCommand([]byte("shader open")))
	assert.Equal(t, "shader: open", readReply(t, s))

	require.NoError(t, s.WriteCommand([]byte("shader close")))
	assert.Equal(t, "shader: closed", readReply(t, s))
}

func TestSimulator_UnknownCommand(t *testing.T) {
	s := NewSimulator(time.Millisecond)

	require.NoError(t, s.WriteCommand([]byte("frobnicate")))
	assert.Equal(t, "err: unknown command", readReply(t, s))
}

func TestSimulator_QuietUntilEmitInterval(t *testing.T) {
	s := NewSimulator(time.Millisecond)

	// Fresh simulator with nothing queued: bounded wait, no line.
	line, err := s.ReadLine()
	require.NoError(t, err)
	assert.Nil(t, line)
}

func TestSimulator_ClosedLinkFails(t *testing.T) {
	s := NewSimulator(time.Millisecond)
	require.NoError(t, s.Close())

	_, err := s.ReadLine()
	assert.Error(t, err)
	assert.Error(t, s.WriteCommand([]byte("shader open")))
}
