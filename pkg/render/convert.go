package render

import (
	"bytes"
	"context"
	"fmt"
)

// RSVGConvert is the librsvg converter used by [ToPDF] and [ToPNG].
// Install with: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
var RSVGConvert = Tool{Executable: "rsvg-convert", Package: "librsvg"}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
func ToPDF(ctx context.Context, plugin string, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, plugin, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(ctx context.Context, plugin string, svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(ctx, plugin, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert pipes svg through rsvg-convert and returns its standard output.
func rsvgConvert(ctx context.Context, plugin string, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if err := RSVGConvert.Validate(plugin); err != nil {
		return nil, err
	}

	cmd := RSVGConvert.Command(append([]string{"-f", format}, extraArgs...)...)
	cmd.Stdin = bytes.NewReader(svg)

	out, err := Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("%s export: %w", format, err)
	}
	return out.Stdout, nil
}
