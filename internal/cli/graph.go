package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/render/fanout"
)

// graphFormats are the accepted --format values.
var graphFormats = []string{"svg", "png", "dot"}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags    splitFlags
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [figure.json|figure.toml|-]",
		Short: "Render how input traces fan out into split traces",
		Long: `Render a diagram with one node per input trace and one per output trace,
connected by the split that produced each output. Output nodes are filled with
their marker color when it is a single value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(format, graphFormats...); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), args[0], output, format, detailed, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.fanout.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show point counts and types")
	flags.register(cmd)

	return cmd
}

// runGraph splits input and renders the fan-out diagram.
func (c *CLI) runGraph(ctx context.Context, input, output, format string, detailed bool, flags splitFlags) error {
	fig, result, err := c.runSplit(ctx, input, flags)
	if err != nil {
		return err
	}

	dot := fanout.ToDOT(fig.Data, result.Traces, result.Origins, fanout.Options{Detailed: detailed})
	data, err := fanout.Render(ctx, dot, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if output == "" {
		output = defaultOutput(input, ".fanout."+format)
	}
	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := errors.ValidateFilePath(output); err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Graph rendered")
	printFile(output)
	printStats(result.Stats.Inputs, result.Stats.Outputs, result.Stats.Transforms, result.CacheHit)
	return nil
}
