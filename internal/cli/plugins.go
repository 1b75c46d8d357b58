package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pluginsCommand creates the plugins command listing registered plugins.
func (c *CLI) pluginsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the available macro plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for i, p := range c.registry().Plugins() {
				info := p.Info()
				if i > 0 {
					fmt.Fprintln(w)
				}
				printInfo(w, "%s", StyleTitle.Render(info.TagName))
				printKeyValue(w, "entrypoint", info.EntrypointName)
				printKeyValue(w, "host", info.VersionRange())
				if info.Description != "" {
					printKeyValue(w, "description", info.Description)
				}
			}
			return nil
		},
	}
}
