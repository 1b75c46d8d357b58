// Package cli implements the mermaidmacro command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mermaidmacro/pkg/buildinfo"
	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
	"github.com/matzehuels/mermaidmacro/pkg/macro"
	"github.com/matzehuels/mermaidmacro/pkg/render/graphviz"
	"github.com/matzehuels/mermaidmacro/pkg/render/mermaid"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mermaidmacro"

	// configFileName is the config file inside the config directory.
	configFileName = "config.toml"

	// exitInterrupted is the shell convention for a process stopped by SIGINT.
	exitInterrupted = 130
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config flag; empty means the default location
	verbose    bool   // --verbose flag
	config     Config
}

// Run executes the command line in args and returns the process exit code.
// Errors are reported on stderr by their user-facing message.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := New(stderr, log.InfoLevel)
	return exitCode(stderr, c.execute(ctx, args, os.Stdin, stdout, stderr))
}

// execute runs the root command with the given arguments and streams.
func (c *CLI) execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// exitCode reports err on w and maps it to a process exit code.
// Cancellation exits quietly with exitInterrupted.
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	}
	printError(w, "%s", errs.UserMessage(err))
	return 1
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Render diagram macros the way a document host would",
		Long: `mermaidmacro renders Mermaid diagram markup to images through mermaid.cli (mmdc),
using the same plugin a document-processing host loads for its mermaid macros.

Use it to check that a machine can render diagrams before a document build,
or to render a single diagram file by hand.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.SetLogLevel(levelFor(c.verbose))
			cmd.SetContext(log.WithContext(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mermaidmacro/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.pluginsCommand())
	root.AddCommand(c.configCommand())

	return root
}

// =============================================================================
// Plugin Registry
// =============================================================================

// registry builds the plugins from the loaded configuration.
func (c *CLI) registry() *macro.Registry {
	return macro.NewRegistry(
		mermaid.New(mermaid.Config{
			Executable: c.config.Mermaid.Executable,
			TempDir:    c.config.Mermaid.TempDir,
			Logger:     c.Logger,
		}),
		graphviz.New(graphviz.Config{Logger: c.Logger}),
	)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/mermaidmacro/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns the config file used when --config is not set.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
