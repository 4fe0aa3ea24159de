package device

import (
	"bytes"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialLink is the real transport over a serial port.
type SerialLink struct {
	port    serial.Port
	pending []byte
}

// Open opens the serial port at the given baud rate and arms the bounded
// read timeout. Callers treat a failure here as fatal: without the link
// there is no session.
func Open(portName string, baud int, readTimeout time.Duration) (*SerialLink, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %q: %w", portName, err)
	}
	return &SerialLink{port: port}, nil
}

// ReadLine returns the next newline-terminated line, without its line ending,
// or (nil, nil) if none completed within the read timeout. Bytes of a partial
// line are buffered across calls so slow senders are not truncated.
func (l *SerialLink) ReadLine() ([]byte, error) {
	if line := l.takeLine(); line != nil {
		return line, nil
	}

	buf := make([]byte, 256)
	n, err := l.port.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("serial read: %w", err)
	}
	if n > 0 {
		l.pending = append(l.pending, buf[:n]...)
	}
	return l.takeLine(), nil
}

// takeLine splits one complete line off the pending buffer, if any.
func (l *SerialLink) takeLine() []byte {
	i := bytes.IndexByte(l.pending, '\n')
	if i < 0 {
		return nil
	}
	line := bytes.TrimRight(l.pending[:i], "\r")
	l.pending = append([]byte(nil), l.pending[i+1:]...)
	if len(line) == 0 {
		return l.takeLine()
	}
	return line
}

// WriteCommand sends the exact bytes to the device.
func (l *SerialLink) WriteCommand(p []byte) error {
	if _, err := l.port.Write(p); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	return nil
}

func (l *SerialLink) Close() error {
	return l.port.Close()
}
