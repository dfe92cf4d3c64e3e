package cli

import (
	"context"
	"slices"

	"github.com/spf13/cobra"

	"fieldpaths/internal/analyze"
	"fieldpaths/internal/shape"
)

func analyzeCmd(a *app) *cobra.Command {
	var (
		patterns  []string
		terminals []string
	)

	cmd := &cobra.Command{
		Use:   "analyze [--pkg pattern]... TYPE...",
		Short: "Resolve the leaf paths of Go types declared in packages",
		Long: `Loads Go packages, describes their exported types from source and prints
the leaf paths of each TYPE. Types are named as "store.Order", as a full
"example.com/app/store.Order", or by bare name when unambiguous.`,
		Example: `  fieldpaths analyze --pkg ./store store.Order
  fieldpaths analyze --pkg ./... --terminal github.com/google/uuid.UUID -f json Order Customer`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, types, err := a.loadTypes(cmd.Context(), patterns, terminals, args)
			if err != nil {
				return err
			}

			results, err := a.resolveAll(cmd.Context(), types)
			if err != nil {
				return err
			}

			return writeResults(a.out, a.cfg.Output.Format, results)
		},
	}

	cmd.Flags().StringSliceVarP(&patterns, "pkg", "p", nil, "package pattern to load (repeatable)")
	cmd.Flags().StringSliceVar(&terminals, "terminal", nil, "full name of an extra leaf type (repeatable)")

	return cmd
}

// loadTypes loads the packages matched by patterns, falling back to the
// configured ones, and looks up each of names in the resulting graph.
func (a *app) loadTypes(ctx context.Context, patterns, terminals, names []string) (*analyze.Graph, []*shape.Type, error) {
	if len(patterns) == 0 {
		patterns = a.cfg.Analyze.Packages
	}

	analyzer := analyze.NewAnalyzer(
		analyze.WithTerminals(slices.Concat(a.cfg.Analyze.Terminals, terminals)...),
		analyze.WithAnalyzerLogger(a.log),
	)

	graph, err := analyzer.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, nil, err
	}

	types := make([]*shape.Type, 0, len(names))

	for _, name := range names {
		t, err := graph.Lookup(name)
		if err != nil {
			return nil, nil, err
		}

		types = append(types, t)
	}

	return graph, types, nil
}
