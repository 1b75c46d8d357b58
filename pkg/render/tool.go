package render

import (
	"os/exec"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
)

// Tool describes an external renderer executable.
type Tool struct {
	// Executable is the command name looked up on PATH, or a path to it.
	Executable string

	// Package names the distribution that provides Executable.
	// It only appears in validation messages.
	Package string
}

// LookPath resolves the tool's executable the same way the shell would.
func (t Tool) LookPath() (string, error) {
	return exec.LookPath(t.Executable)
}

// Validate checks that the executable can be found. The returned error is
// an *errors.ValidationError naming plugin and the missing executable.
func (t Tool) Validate(plugin string) error {
	if _, err := t.LookPath(); err != nil {
		return &errs.ValidationError{
			Plugin:     plugin,
			Executable: t.Executable,
			Package:    t.Package,
			Cause:      err,
		}
	}
	return nil
}

// Command builds an invocation of the tool with args.
func (t Tool) Command(args ...string) Command {
	return Command{Name: t.Executable, Args: args}
}
