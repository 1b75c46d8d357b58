package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
	"github.com/matzehuels/mermaidmacro/pkg/render/graphviz"
	"github.com/matzehuels/mermaidmacro/pkg/render/mermaid"
)

// Config is the on-disk configuration. Every field is optional; flags given
// on the command line take precedence.
//
//	[mermaid]
//	executable = "/opt/node/bin/mmdc"
//	temp_dir = "/var/tmp"
//	theme = "forest"
//	format = "svg"
//
//	[graphviz]
//	format = "png"
type Config struct {
	Mermaid  MermaidConfig  `toml:"mermaid"`
	Graphviz GraphvizConfig `toml:"graphviz"`
}

// MermaidConfig configures the mermaid plugin.
type MermaidConfig struct {
	Executable string `toml:"executable"`
	TempDir    string `toml:"temp_dir"`
	Theme      string `toml:"theme"`
	Format     string `toml:"format"`
}

// GraphvizConfig configures the graphviz plugin.
type GraphvizConfig struct {
	Format string `toml:"format"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Mermaid: MermaidConfig{
			Executable: mermaid.DefaultExecutable,
			Theme:      mermaid.DefaultTheme,
			Format:     mermaid.DefaultFormat,
		},
		Graphviz: GraphvizConfig{
			Format: graphviz.DefaultFormat,
		},
	}
}

// defaults returns the attribute defaults configured for a macro tag.
func (cfg Config) defaults(tag string) map[string]string {
	switch tag {
	case mermaid.DefaultInfo.TagName:
		return map[string]string{
			mermaid.AttrTheme:  cfg.Mermaid.Theme,
			mermaid.AttrFormat: cfg.Mermaid.Format,
		}
	case graphviz.DefaultInfo.TagName:
		return map[string]string{
			graphviz.AttrFormat: cfg.Graphviz.Format,
		}
	}
	return nil
}

// readConfig decodes the TOML file at path over the defaults.
// A missing file is not an error when optional is true.
func readConfig(path string, optional bool) (Config, []string, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && optional {
		return cfg, nil, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return cfg, nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return cfg, unknown, nil
}

// loadConfig reads the config file named by --config, or the default file
// if it exists, into c.config.
func (c *CLI) loadConfig() error {
	path := c.configPath
	optional := path == ""
	if optional {
		p, err := defaultConfigPath()
		if err != nil {
			c.Logger.Debug("no config directory", "err", err)
			return nil
		}
		path = p
	}

	cfg, unknown, err := readConfig(path, optional)
	if err != nil {
		return err
	}
	for _, key := range unknown {
		c.Logger.Warn("unknown config key", "key", key, "file", path)
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "file", path)
	return nil
}

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := defaultConfigPath()
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(c.config)
		},
	}
}
