package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
	"github.com/matzehuels/mermaidmacro/pkg/macro"
	"github.com/matzehuels/mermaidmacro/pkg/render/mermaid"
)

// stdinName is the input argument that reads markup from standard input.
const stdinName = "-"

// defaultOutputBase names the output when markup comes from stdin.
const defaultOutputBase = "diagram"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	tag    string   // macro tag selecting the plugin
	theme  string   // shorthand for --attr theme=...
	format string   // shorthand for --attr format=...
	attrs  []string // raw key=value attributes
	output string   // output path; "-" writes to stdout
}

// renderCommand creates the render command.
//
// Attributes are merged in increasing precedence: config file defaults for
// the tag, --attr pairs, then --theme and --format.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{tag: mermaid.DefaultInfo.TagName}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render one diagram macro body to an image",
		Long: `Render reads diagram markup from a file (or stdin when the file is "-" or
omitted) and renders it with the plugin registered for --tag.

The image is written next to the input with the format as extension, to
diagram.<format> for stdin input, or to the path given with -o.`,
		Example: `  mermaidmacro render flow.mmd
  mermaidmacro render flow.mmd --theme dark --format svg
  cat flow.mmd | mermaidmacro render -o - > flow.png
  mermaidmacro render graph.dot --tag graphviz --attr format=png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdinName
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), cmd, input, opts)
		},
	}

	cmd.Flags().StringVar(&opts.tag, "tag", opts.tag, "macro tag selecting the plugin")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "diagram theme (mermaid: default, dark, forest, neutral)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (mermaid: png, svg, pdf)")
	cmd.Flags().StringArrayVar(&opts.attrs, "attr", nil, "macro attribute as key=value (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file ("-" for stdout)`)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, opts renderOpts) error {
	logger := log.FromContext(ctx).With("tag", opts.tag)

	attrs, err := c.renderAttributes(opts)
	if err != nil {
		return err
	}

	plugin, err := c.registry().Get(opts.tag)
	if err != nil {
		return err
	}

	markup, err := readMarkup(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	if err := plugin.Validate(ctx); err != nil {
		return err
	}

	logger.Debug("rendering", "input", input, "attrs", attrs)
	start := time.Now()
	name := displayName(input)

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", name))
	spinner.Start()

	art, err := plugin.Render(ctx, markup, attrs)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError(fmt.Sprintf("Rendering %s failed", name))
		return err
	}

	path, err := writeArtifact(cmd.OutOrStdout(), input, opts.output, art)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Writing %s failed", name))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s as %s", name, art.Extension))
	logElapsed(logger, start, "rendered", "output", path, "bytes", len(art.Data))

	if path != stdinName {
		printFile(cmd.OutOrStdout(), path)
	}
	if len(art.Data) == 0 {
		printWarning(cmd.ErrOrStderr(), "%s produced an empty image", opts.tag)
		printDetail(cmd.ErrOrStderr(), "check the diagram markup and renderer version")
	}
	return nil
}

// writeArtifact writes art to stdout when output is "-", or atomically to
// the explicit or derived output path. It returns where the data went.
func writeArtifact(stdout io.Writer, input, output string, art macro.Artifact) (string, error) {
	if output == stdinName {
		if _, err := stdout.Write(art.Data); err != nil {
			return "", fmt.Errorf("write stdout: %w", err)
		}
		return stdinName, nil
	}

	path := outputPath(input, output, art.Extension)
	if err := errs.ValidatePath(path); err != nil {
		return "", err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(art.Data)); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// renderAttributes merges config defaults and flags into the attributes
// passed to the plugin.
func (c *CLI) renderAttributes(opts renderOpts) (macro.Attributes, error) {
	attrs := make(macro.Attributes)
	for k, v := range c.config.defaults(opts.tag) {
		if v != "" {
			attrs[k] = v
		}
	}

	given, err := macro.ParseAttributes(opts.attrs)
	if err != nil {
		return nil, err
	}
	for k, v := range given {
		attrs[k] = v
	}

	if opts.theme != "" {
		attrs[mermaid.AttrTheme] = opts.theme
	}
	if opts.format != "" {
		attrs[mermaid.AttrFormat] = opts.format
	}

	for _, key := range []string{mermaid.AttrTheme, mermaid.AttrFormat} {
		if v, ok := attrs[key]; ok {
			if err := errs.ValidateAttribute(key, v); err != nil {
				return nil, err
			}
		}
	}
	return attrs, nil
}

// readMarkup reads the macro body from the named file, or from stdin.
func readMarkup(stdin io.Reader, input string) (string, error) {
	if input == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	if err := errs.ValidatePath(input); err != nil {
		return "", err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.Wrap(errs.ErrCodeFileNotFound, err, "input file %s not found", input)
		}
		return "", fmt.Errorf("read %s: %w", input, err)
	}
	return string(data), nil
}

// outputPath returns the explicit output, or derives one from the input
// name and the artifact extension.
func outputPath(input, output, ext string) string {
	if output != "" {
		return output
	}
	if input == stdinName {
		return defaultOutputBase + "." + ext
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}

func displayName(input string) string {
	if input == stdinName {
		return "stdin"
	}
	return filepath.Base(input)
}
