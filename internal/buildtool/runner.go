// Package buildtool invokes the external firmware build (make / make upload).
package buildtool

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner shells out to make in the firmware directory, streaming tool output
// to the operator console. Failures carry the exit status; they are reported
// by the dispatcher and never terminate the session.
type Runner struct {
	dir string
	out io.Writer
}

func NewRunner(dir string, out io.Writer) *Runner {
	return &Runner{dir: dir, out: out}
}

// Compile runs `make`.
func (r *Runner) Compile(ctx context.Context) error {
	return r.run(ctx, "make")
}

// Flash runs `make upload`.
func (r *Runner) Flash(ctx context.Context) error {
	return r.run(ctx, "make", "upload")
}

func (r *Runner) run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	cmd.Stdout = r.out
	cmd.Stderr = r.out
	if err := cmd.Run(); err != nil {
		tool := strings.TrimSpace(name + " " + strings.Join(args, " "))
		return fmt.Errorf("%s in %q: %w", tool, r.dir, err)
	}
	return nil
}
