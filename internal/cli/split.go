package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/tracesplit/pkg/io"
	"github.com/matzehuels/tracesplit/pkg/pipeline"
	"github.com/matzehuels/tracesplit/pkg/schema"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

// splitFlags are the runner flags shared by every command that executes a
// split.
type splitFlags struct {
	workers int
	refresh bool
	noCache bool
}

func (f *splitFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "parallel workers (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// splitCommand creates the split command.
func (c *CLI) splitCommand() *cobra.Command {
	var (
		flags   splitFlags
		output  string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "split [figure.json|figure.toml|-]",
		Short: "Apply trace transforms and write the resulting figure",
		Long: `Apply the transforms declared on each trace of a figure and write the result.

Every trace may carry a "transforms" list. A groupby entry partitions the
trace's per-point arrays by its "groups" array, producing one trace per
distinct label in first-occurrence order, with that label's "style" overlaid.

The input is JSON (an array of traces or an object with "data") or TOML
([[data]] tables). Use "-" to read JSON from stdin.

Results are cached; use --refresh to recompute or --no-cache to bypass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSplitCommand(cmd.Context(), args[0], output, summary, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.split.json)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a table of the output traces")
	flags.register(cmd)

	return cmd
}

// runSplitCommand splits input and writes the resulting figure.
func (c *CLI) runSplitCommand(ctx context.Context, input, output string, summary bool, flags splitFlags) error {
	fig, result, err := c.runSplit(ctx, input, flags)
	if err != nil {
		return err
	}

	out := &pkgio.Figure{Data: result.Traces, Layout: fig.Layout}
	if output == "" {
		output = defaultOutput(input, ".split.json")
	}
	if err := pkgio.ExportJSON(out, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	if output == "-" {
		return nil
	}

	printSuccess("Split complete")
	printFile(output)
	printStats(result.Stats.Inputs, result.Stats.Outputs, result.Stats.Transforms, result.CacheHit)
	if summary {
		printNewline()
		fmt.Println(summaryTable(result, newSchema()))
	}
	printNewline()
	printNextStep("Visualize", appName+" graph "+input)

	return nil
}

// runSplit loads the figure at input and runs the pipeline over its data.
func (c *CLI) runSplit(ctx context.Context, input string, flags splitFlags) (*pkgio.Figure, *pipeline.Result, error) {
	fig, err := pkgio.ImportFile(input)
	if err != nil {
		return nil, nil, fmt.Errorf("load figure %s: %w", input, err)
	}
	if len(fig.Data) == 0 {
		printWarning("%s has no traces", input)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions()
	opts.Workers = flags.workers
	opts.Refresh = flags.refresh
	opts.Logger = c.Logger

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Splitting %d traces...", len(fig.Data)))
	spinner.Start()

	result, err := runner.Execute(ctx, fig.Data, opts)
	if err != nil {
		spinner.StopWithError("Split failed")
		return nil, nil, fmt.Errorf("split: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	prog.done(fmt.Sprintf("Split %d traces into %d", result.Stats.Inputs, result.Stats.Outputs))

	return fig, result, nil
}

// summaryTable renders one row per output trace.
func summaryTable(result *pipeline.Result, finder schema.ArrayFinder) string {
	rows := make([][]string, len(result.Traces))
	for i, t := range result.Traces {
		from := "-"
		if i < len(result.Origins) {
			from = strconv.Itoa(result.Origins[i])
		}
		rows[i] = []string{
			strconv.Itoa(i),
			truncate(t.Name(), 24),
			t.Type(),
			from,
			strconv.Itoa(points(t, finder)),
		}
	}
	return renderTable([]string{"#", "Name", "Type", "From", "Points"}, rows)
}

// points returns the longest per-point array of t.
func points(t trace.Trace, finder schema.ArrayFinder) int {
	n := 0
	for _, p := range finder.FindArrayAttributes(t) {
		v, _ := trace.Get(map[string]any(t), p)
		if l, ok := trace.Len(v); ok && l > n {
			n = l
		}
	}
	return n
}

// defaultOutput derives an output path next to input.
func defaultOutput(input, suffix string) string {
	if input == "-" {
		return "-"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}
