package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/schema"
	"github.com/matzehuels/tracesplit/pkg/transform/all"
)

// newSchema returns the built-in trace types with the built-in transforms
// declared on them.
func newSchema() *schema.Registry {
	s := schema.NewBuiltinRegistry()
	// built-in transform names never collide
	_ = all.Registry().DeclareAttributes(s)
	return s
}

// defaultsCommand creates the defaults command.
func (c *CLI) defaultsCommand() *cobra.Command {
	var raw string

	cmd := &cobra.Command{
		Use:   "defaults <transform>",
		Short: "Show the resolved options of a transform",
		Long: `Show the options a transform resolves to after defaults are supplied.

Pass raw options as JSON with --options, e.g.

  tracesplit defaults groupby --options '{"active": false, "groups": [1, 2]}'`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: all.Registry().Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := all.Registry().Lookup(args[0])
			if err != nil {
				return err
			}

			in := map[string]any{}
			if raw != "" {
				if err := json.Unmarshal([]byte(raw), &in); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse --options")
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(mod.SupplyDefaults(in))
		},
	}

	cmd.Flags().StringVar(&raw, "options", "", "raw transform options as a JSON object")

	return cmd
}

// schemaCommand creates the schema command.
func (c *CLI) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [trace-type|transform]",
		Short: "List declared attributes",
		Long: `List the attributes declared by a trace type or transform.

Without an argument, list the known trace types and transforms. Attributes
marked per-point are split along with the data arrays.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSchema()
			if len(args) == 0 {
				printKeyValue("trace types", strings.Join(s.TraceTypes(), ", "))
				printKeyValue("transforms", strings.Join(all.Registry().Names(), ", "))
				return nil
			}

			attrs, ok := s.TraceType(args[0])
			if !ok {
				if attrs, ok = s.Transform(args[0]); !ok {
					return errors.New(errors.ErrCodeUnknownTraceType, "unknown trace type or transform %q", args[0])
				}
			}
			fmt.Println(StyleTitle.Render(args[0]))
			fmt.Println(attributeTable(attrs))
			return nil
		},
	}
}

// attributeTable renders one row per declared attribute, sorted by path.
func attributeTable(attrs schema.Attributes) string {
	names := attrs.Names()
	rows := make([][]string, len(names))
	for i, name := range names {
		a := attrs[name]
		perPoint := ""
		if a.PerPoint() {
			perPoint = iconSuccess
		}
		rows[i] = []string{name, string(a.ValType), formatDefault(a.Dflt), perPoint, truncate(a.Description, 48)}
	}
	return renderTable([]string{"Attribute", "Type", "Default", "Per-point", "Description"}, rows)
}

func formatDefault(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return truncate(string(b), 24)
}
