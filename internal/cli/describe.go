package cli

import (
	"github.com/spf13/cobra"

	"fieldpaths/internal/describe"
	"fieldpaths/internal/diagnostic"
	"fieldpaths/internal/shape"
)

func describeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE [TYPE...]",
		Short: "Resolve the leaf paths of types in a YAML description file",
		Long: `Reads a YAML description of record and union types and prints the leaf
paths of each TYPE, or of every described type when none is given.`,
		Example: `  fieldpaths describe orders.yaml billing.Order
  fieldpaths describe -f yaml orders.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, diags, err := describe.Load(args[0])
			a.report(diags)

			if err != nil {
				return err
			}

			names := args[1:]
			if len(names) == 0 {
				names = catalog.Names()
			}

			types := make([]*shape.Type, 0, len(names))
			for _, name := range names {
				t, err := catalog.Lookup(name)
				if err != nil {
					return err
				}

				types = append(types, t)
			}

			results, err := a.resolveAll(cmd.Context(), types)
			if err != nil {
				return err
			}

			return writeResults(a.out, a.cfg.Output.Format, results)
		},
	}
}

// report logs warnings and infos; errors come back from describe.Load.
func (a *app) report(diags diagnostic.Diagnostics) {
	for d := range diags.All() {
		switch d.Severity {
		case diagnostic.DiagnosticError:
			continue
		case diagnostic.DiagnosticWarning:
			a.log.Warn(d.String(), "code", d.Code)
		default:
			a.log.Info(d.String(), "code", d.Code)
		}
	}
}
