package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/stree-ui/stree/internal/cli/output"
	"github.com/stree-ui/stree/pkg/tree"
)

// NewThemesCommand creates the themes command.
func NewThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available widget themes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetAllowedRowLength(output.Width())
			t.AppendHeader(table.Row{"Theme", "Stylesheet", "Default"})

			for _, theme := range tree.Themes() {
				isDefault := ""
				if cfg != nil && string(theme) == cfg.Widget.Theme {
					isDefault = "*"
				}
				t.AppendRow(table.Row{string(theme), theme.Stylesheet(), isDefault})
			}

			t.Render()
			return nil
		},
	}
}
