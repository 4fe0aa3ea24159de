package session

import (
	"os"
	"os/signal"
)

// NotifyInterrupts bridges the operator interrupt (Ctrl-C) into the loop.
// The signal is delivered on a channel the loop selects on, so all session
// state mutation stays on the loop goroutine even though delivery is
// asynchronous. The returned stop function releases the registration.
func NotifyInterrupts() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	return ch, func() { signal.Stop(ch) }
}
