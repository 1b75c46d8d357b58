// Package mermaid renders Mermaid diagram markup to images with mermaid.cli.
//
// The [Renderer] writes markup to a temporary file, runs
//
//	mmdc -t <theme> -i <input> -o <output>
//
// and returns the output file's bytes. Both temporary files are removed
// before Render returns, whether or not rendering succeeded.
//
// Recognised macro attributes:
//   - theme: mermaid theme name, default "default"
//   - format: output format and file extension, default "png"
//
// Other attributes are ignored. Formats are passed through to mmdc as the
// output file suffix; mmdc decides which ones it supports. Only formats that
// cannot be a file suffix (empty, or containing '*' or a path separator) are
// rejected up front with an INVALID_FORMAT error.
package mermaid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
	"github.com/matzehuels/mermaidmacro/pkg/macro"
	"github.com/matzehuels/mermaidmacro/pkg/observability"
	"github.com/matzehuels/mermaidmacro/pkg/render"
)

const (
	// DefaultExecutable is the mermaid.cli command.
	DefaultExecutable = "mmdc"

	// DefaultTheme is used when the macro has no theme attribute.
	DefaultTheme = "default"

	// DefaultFormat is used when the macro has no format attribute.
	DefaultFormat = "png"

	// Package names the npm distribution that ships mmdc.
	Package = "mermaid.cli"
)

// Attribute keys understood by the renderer.
const (
	AttrTheme  = "theme"
	AttrFormat = "format"
)

// DefaultInfo describes the mermaid plugin to hosts.
var DefaultInfo = macro.Info{
	TagName:        "mermaid",
	EntrypointName: "mermaid",
	Description:    "Converts mermaid markup into images using mermaid.cli",
	MinVersion:     "2.0.0",
	MaxVersion:     "3.0.0",
}

// Config configures a Renderer. The zero value is usable.
type Config struct {
	// Executable is the mmdc command name or path. Default "mmdc".
	Executable string

	// TempDir holds the per-call input and output files.
	// Empty means the OS temporary directory.
	TempDir string

	// Info overrides DefaultInfo. Fields left empty keep their defaults.
	Info macro.Info

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Renderer is the mermaid macro plugin. It holds no per-call state and is
// safe for concurrent use.
type Renderer struct {
	tool    render.Tool
	tempDir string
	info    macro.Info
	logger  *log.Logger
}

var _ macro.Plugin = (*Renderer)(nil)

// New creates a Renderer from cfg.
func New(cfg Config) *Renderer {
	exe := cfg.Executable
	if exe == "" {
		exe = DefaultExecutable
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Renderer{
		tool:    render.Tool{Executable: exe, Package: Package},
		tempDir: cfg.TempDir,
		info:    mergeInfo(DefaultInfo, cfg.Info),
		logger:  logger.WithPrefix(DefaultInfo.TagName),
	}
}

// mergeInfo fills the empty fields of override from base.
func mergeInfo(base, override macro.Info) macro.Info {
	if override.TagName != "" {
		base.TagName = override.TagName
	}
	if override.EntrypointName != "" {
		base.EntrypointName = override.EntrypointName
	}
	if override.Description != "" {
		base.Description = override.Description
	}
	if override.MinVersion != "" {
		base.MinVersion = override.MinVersion
	}
	if override.MaxVersion != "" {
		base.MaxVersion = override.MaxVersion
	}
	return base
}

// Info returns the plugin description.
func (r *Renderer) Info() macro.Info { return r.info }

// Executable returns the configured mmdc command.
func (r *Renderer) Executable() string { return r.tool.Executable }

// Validate checks that mmdc can be found on PATH.
func (r *Renderer) Validate(ctx context.Context) error {
	err := r.tool.Validate(r.info.EntrypointName)
	observability.Render().OnValidate(ctx, r.info.EntrypointName, err)
	if err != nil {
		r.logger.Debug("renderer not found", "executable", r.tool.Executable, "err", err)
		return err
	}
	r.logger.Debug("renderer found", "executable", r.tool.Executable)
	return nil
}

// Args builds the mmdc argument list for one render.
func Args(theme, input, output string) []string {
	return []string{"-t", theme, "-i", input, "-o", output}
}

// Render converts markup to an image in the format named by attrs.
//
// A nonzero mmdc exit yields *errors.OperationError with mmdc's standard
// error text. Failures creating, writing or reading the temporary files are
// returned as wrapped I/O errors.
func (r *Renderer) Render(ctx context.Context, markup string, attrs macro.Attributes) (macro.Artifact, error) {
	theme := attrs.Get(AttrTheme, DefaultTheme)
	format := attrs.Get(AttrFormat, DefaultFormat)

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, r.info.EntrypointName, format)
	start := time.Now()

	art, err := r.render(ctx, markup, theme, format)
	hooks.OnRenderComplete(ctx, r.info.EntrypointName, format, len(art.Data), time.Since(start), err)
	return art, err
}

func (r *Renderer) render(ctx context.Context, markup, theme, format string) (macro.Artifact, error) {
	// The format becomes the output file suffix, and os.CreateTemp would
	// substitute a '*' in it.
	if format == "" || strings.ContainsAny(format, `*/\`) {
		return macro.Artifact{}, errs.New(errs.ErrCodeInvalidFormat, "%s: invalid format %q", r.info.EntrypointName, format)
	}

	logger := r.logger.With("render_id", uuid.NewString())

	input, releaseInput, err := render.WriteTemp(r.tempDir, "mermaid-*.mmd", []byte(markup))
	if err != nil {
		return macro.Artifact{}, fmt.Errorf("%s: input: %w", r.info.EntrypointName, err)
	}
	defer releaseInput()

	output, releaseOutput, err := render.ReserveTemp(r.tempDir, "mermaid-*."+format)
	if err != nil {
		return macro.Artifact{}, fmt.Errorf("%s: output: %w", r.info.EntrypointName, err)
	}
	defer releaseOutput()

	cmd := r.tool.Command(Args(theme, input, output)...)
	logger.Debug("running renderer", "cmd", cmd.String())

	if _, err := render.Run(ctx, cmd); err != nil {
		if ctx.Err() != nil {
			return macro.Artifact{}, err
		}
		opErr := &errs.OperationError{
			Plugin: r.info.EntrypointName,
			Input:  input,
			Output: output,
			Cause:  err,
		}
		var exitErr *render.ExitError
		if errors.As(err, &exitErr) {
			opErr.Stderr = exitErr.Stderr
		}
		logger.Debug("renderer failed", "err", err)
		return macro.Artifact{}, opErr
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return macro.Artifact{}, fmt.Errorf("%s: read output: %w", r.info.EntrypointName, err)
	}
	logger.Debug("rendered diagram", "format", format, "theme", theme, "bytes", len(data))

	return macro.Artifact{Extension: format, Data: data}, nil
}
