package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/matzehuels/mermaidmacro/pkg/observability"
)

// waitDelay bounds how long Run waits for the output pipes to close once the
// renderer process has exited or been killed. Children it left running may
// hold them open; their output is not collected.
const waitDelay = 2 * time.Second

// Command is a single external renderer invocation.
type Command struct {
	Name  string    // executable name or path
	Args  []string  // arguments, not including Name
	Stdin io.Reader // nil means no input
}

// String returns the command line with arguments separated by spaces.
// It is meant for logs and error messages, not for a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Output holds what a finished command wrote.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// ExitError is returned by [Run] when the command ran and exited nonzero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error // the underlying *exec.ExitError
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.ExitCode, msg)
}

// Unwrap returns the underlying *exec.ExitError.
func (e *ExitError) Unwrap() error { return e.Err }

// Run executes c and waits for it to finish.
//
// Standard output and standard error are captured in full. A nonzero exit
// status is reported as [*ExitError]. If the process could not be started
// the error from os/exec is returned unchanged. If ctx ends first the process
// is killed and the context error is returned.
func Run(ctx context.Context, c Command) (Output, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = c.Stdin
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	hooks := observability.Process()
	hooks.OnProcessStart(ctx, c.Name, c.Args)
	start := time.Now()

	err := cmd.Run()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	hooks.OnProcessExit(ctx, c.Name, exitCode, time.Since(start))

	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return out, nil
	}
	// The renderer itself succeeded; only a leftover child kept the pipes open.
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("%s: %w", c.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, &ExitError{
			Command:  c.String(),
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
			Err:      exitErr,
		}
	}
	return out, err
}
