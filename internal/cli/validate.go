package cli

import (
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
	"github.com/matzehuels/mermaidmacro/pkg/macro"
)

// validateCommand creates the validate command, which runs each plugin's
// prerequisite check the way a host does at startup.
func (c *CLI) validateCommand() *cobra.Command {
	var tag, hostVersion string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that plugin prerequisites are installed",
		Example: `  mermaidmacro validate
  mermaidmacro validate --tag mermaid --host-version 2.4.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			reg := c.registry()

			plugins := reg.Plugins()
			if tag != "" {
				p, err := reg.Get(tag)
				if err != nil {
					return err
				}
				plugins = []macro.Plugin{p}
			}

			var failed int
			for _, p := range plugins {
				info := p.Info()
				if err := p.Validate(ctx); err != nil {
					printError(w, "%s: %s", info.TagName, errs.UserMessage(err))
					failed++
					continue
				}
				if hostVersion != "" {
					if err := info.CheckHost(hostVersion); err != nil {
						printError(w, "%s: %s", info.TagName, errs.UserMessage(err))
						failed++
						continue
					}
				}
				printSuccess(w, "%s ready", info.TagName)
			}

			if failed > 0 {
				return errs.New(errs.ErrCodeValidation, "%d of %d plugins failed validation", failed, len(plugins))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "validate only the plugin for this macro tag")
	cmd.Flags().StringVar(&hostVersion, "host-version", "", "also check the plugin supports this host version")

	return cmd
}
