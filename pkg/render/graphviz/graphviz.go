// Package graphviz renders Graphviz DOT macros in-process with go-graphviz.
//
// It implements the same [macro.Plugin] contract as the mermaid renderer but
// needs no external executable for SVG, PNG and JPG output. PDF output is
// produced from the SVG with rsvg-convert, which must then be installed.
//
// Recognised macro attributes:
//   - format: svg (default), png, jpg or pdf
//   - scale: zoom factor for png output, e.g. "2" for a 2x image; when set
//     the PNG is rasterized from the SVG by rsvg-convert
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
	"github.com/matzehuels/mermaidmacro/pkg/macro"
	"github.com/matzehuels/mermaidmacro/pkg/observability"
	"github.com/matzehuels/mermaidmacro/pkg/render"
)

// DefaultFormat is used when the macro has no format attribute.
const DefaultFormat = "svg"

// Attribute keys understood by the renderer.
const (
	AttrFormat = "format"
	AttrScale  = "scale"
)

// DefaultInfo describes the graphviz plugin to hosts.
var DefaultInfo = macro.Info{
	TagName:        "graphviz",
	EntrypointName: "graphviz",
	Description:    "Converts DOT markup into images using an embedded Graphviz",
	MinVersion:     "2.0.0",
	MaxVersion:     "3.0.0",
}

// formats maps supported attribute values to go-graphviz formats.
var formats = map[string]graphviz.Format{
	"svg": graphviz.SVG,
	"png": graphviz.PNG,
	"jpg": graphviz.JPG,
}

// Formats lists the output formats the plugin accepts.
func Formats() []string {
	return []string{"svg", "png", "jpg", "pdf"}
}

// Config configures a Renderer. The zero value is usable.
type Config struct {
	// Info overrides DefaultInfo when TagName is set.
	Info macro.Info

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Renderer is the graphviz macro plugin. Each Render call creates its own
// Graphviz context, so a Renderer is safe for concurrent use.
type Renderer struct {
	info   macro.Info
	logger *log.Logger
}

var _ macro.Plugin = (*Renderer)(nil)

// New creates a Renderer from cfg.
func New(cfg Config) *Renderer {
	info := DefaultInfo
	if cfg.Info.TagName != "" {
		info = cfg.Info
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Renderer{info: info, logger: logger.WithPrefix(info.TagName)}
}

// Info returns the plugin description.
func (r *Renderer) Info() macro.Info { return r.info }

// Validate always succeeds: Graphviz is compiled in. rsvg-convert is only
// checked when a PDF is requested.
func (r *Renderer) Validate(ctx context.Context) error {
	observability.Render().OnValidate(ctx, r.info.EntrypointName, nil)
	return nil
}

// Render lays out the DOT source in markup and returns the image.
// Malformed DOT yields *errors.OperationError; an unknown format yields an
// UNSUPPORTED error.
func (r *Renderer) Render(ctx context.Context, markup string, attrs macro.Attributes) (macro.Artifact, error) {
	format := attrs.Get(AttrFormat, DefaultFormat)

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, r.info.EntrypointName, format)
	start := time.Now()

	data, err := r.render(ctx, markup, format, attrs.Get(AttrScale, ""))
	hooks.OnRenderComplete(ctx, r.info.EntrypointName, format, len(data), time.Since(start), err)
	if err != nil {
		return macro.Artifact{}, err
	}
	r.logger.Debug("rendered diagram", "format", format, "bytes", len(data))
	return macro.Artifact{Extension: format, Data: data}, nil
}

func (r *Renderer) render(ctx context.Context, markup, format, scale string) ([]byte, error) {
	if format == "png" && scale != "" {
		zoom, err := strconv.ParseFloat(scale, 64)
		if err != nil || zoom <= 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "%s: scale must be a positive number, got %q",
				r.info.EntrypointName, scale)
		}
		svg, err := r.renderNative(ctx, markup, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, r.info.EntrypointName, svg, zoom)
	}

	if format == "pdf" {
		svg, err := r.renderNative(ctx, markup, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, r.info.EntrypointName, svg)
	}

	gvFormat, ok := formats[format]
	if !ok {
		return nil, errs.New(errs.ErrCodeUnsupported, "%s: unsupported format %q (must be one of %v)",
			r.info.EntrypointName, format, Formats())
	}
	return r.renderNative(ctx, markup, gvFormat)
}

func (r *Renderer) renderNative(ctx context.Context, markup string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(markup))
	if err != nil {
		return nil, &errs.OperationError{Plugin: r.info.EntrypointName, Cause: fmt.Errorf("parse DOT: %w", err)}
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, &errs.OperationError{Plugin: r.info.EntrypointName, Cause: fmt.Errorf("render: %w", err)}
	}
	return buf.Bytes(), nil
}
