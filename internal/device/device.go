// Package device abstracts the line-oriented link to the solar tap hardware.
package device

// Link is the transport the session loop polls and writes through.
//
// ReadLine blocks for at most the link's read timeout and returns (nil, nil)
// when no complete line arrived in that window; a timeout is not an error.
// Any non-nil error means the transport can no longer be trusted and the
// session must terminate.
//
// WriteCommand sends the exact bytes given. The firmware frames inbound
// command text itself, so this layer appends no trailing newline.
type Link interface {
	ReadLine() ([]byte, error)
	WriteCommand(p []byte) error
	Close() error
}
