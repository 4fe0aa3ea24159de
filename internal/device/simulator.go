package device

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Thermal model of the simulated tap.
const (
	simAmbientC     = 21.0 // resting temperature with the shader closed
	simSunC         = 48.5 // steady-state temperature in full sun
	simHeatCPerSec  = 0.8  // °C per second toward the sun temperature
	simCoolCPerSec  = 0.4  // °C per second back toward ambient
	simStepsPerDeg  = 10   // motor resolution used by "motor rot"
	simEmitInterval = time.Second
)

var errSimClosed = errors.New("simulator: link closed")

// Simulator is a Link that behaves like a solar tap: it emits periodic
// temperature telemetry, reacts to shader commands by heating or cooling,
// and reports rotation telemetry after motor commands. It exists so the
// controller can run on machines without the hardware attached.
type Simulator struct {
	mu          sync.Mutex
	readTimeout time.Duration
	closed      bool

	tempC      float64
	rotation   int
	shadeOpen  bool
	queued     []string
	lastStep   time.Time
	lastEmit   time.Time
}

func NewSimulator(readTimeout time.Duration) *Simulator {
	now := time.Now()
	return &Simulator{
		readTimeout: readTimeout,
		tempC:       simAmbientC,
		lastStep:    now,
		lastEmit:    now,
	}
}

// ReadLine pops a queued reply if one is pending, otherwise advances the
// thermal model and emits a temperature line once per emit interval. Like
// the serial link it returns (nil, nil) when nothing is ready in time.
func (s *Simulator) ReadLine() ([]byte, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errSimClosed
	}
	if len(s.queued) > 0 {
		line := s.queued[0]
		s.queued = s.queued[1:]
		s.mu.Unlock()
		return []byte(line), nil
	}

	now := time.Now()
	s.advance(now)
	if now.Sub(s.lastEmit) >= simEmitInterval {
		s.lastEmit = now
		line := fmt.Sprintf("C: %.1f", s.tempC)
		s.mu.Unlock()
		return []byte(line), nil
	}
	s.mu.Unlock()

	time.Sleep(s.readTimeout)
	return nil, nil
}

// advance moves the temperature toward its current target. Caller holds mu.
func (s *Simulator) advance(now time.Time) {
	elapsed := now.Sub(s.lastStep).Seconds()
	s.lastStep = now
	if elapsed <= 0 {
		return
	}
	if s.shadeOpen {
		s.tempC = minFloat(s.tempC+simHeatCPerSec*elapsed, simSunC)
	} else {
		s.tempC = maxFloat(s.tempC-simCoolCPerSec*elapsed, simAmbientC)
	}
}

// WriteCommand interprets the same command set the firmware accepts and
// queues the telemetry the hardware would send back.
func (s *Simulator) WriteCommand(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSimClosed
	}
	s.advance(time.Now())

	fields := strings.Fields(string(p))
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "motor":
		if len(fields) != 3 {
			s.queued = append(s.queued, "err: bad motor command")
			return nil
		}
		switch fields[1] {
		case "inc":
			steps, err := strconv.Atoi(fields[2])
			if err != nil {
				s.queued = append(s.queued, "err: bad step count")
				return nil
			}
			s.rotation += steps
		case "rot":
			deg, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				s.queued = append(s.queued, "err: bad degree count")
				return nil
			}
			s.rotation += int(deg * simStepsPerDeg)
		default:
			s.queued = append(s.queued, "err: bad motor command")
			return nil
		}
		s.queued = append(s.queued, fmt.Sprintf("R: %d", s.rotation))
	case "shader":
		if len(fields) != 2 {
			s.queued = append(s.queued, "err: bad shader command")
			return nil
		}
		switch fields[1] {
		case "open":
			s.shadeOpen = true
			s.queued = append(s.queued, "shader: open")
		case "close":
			s.shadeOpen = false
			s.queued = append(s.queued, "shader: closed")
		default:
			s.queued = append(s.queued, "err: bad shader command")
		}
	default:
		s.queued = append(s.queued, "err: unknown command")
	}
	return nil
}

func (s *Simulator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func minFloat(a, b float64) float64 {
	if a <= b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a >= b {
		return a
	}
	return b
}
