package cli

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags splitFlags

	cmd := &cobra.Command{
		Use:   "browse [figure.json|figure.toml]",
		Short: "Browse split output interactively",
		Long: `Split a figure and pick through the output traces in a terminal list.

Press space to preview a trace and enter to print it as JSON on stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := c.runSplit(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}

			s := newSchema()
			pts := make([]int, len(result.Traces))
			for i, t := range result.Traces {
				pts[i] = points(t, s)
			}

			p := tea.NewProgram(NewTraceListModel(result.Traces, result.Origins, pts), tea.WithContext(cmd.Context()))
			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			fm, ok := finalModel.(TraceListModel)
			if !ok || fm.Selected == nil {
				printDetail("No selection made")
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fm.Selected)
		},
	}

	flags.register(cmd)

	return cmd
}
