package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fieldpaths/internal/naming"
)

// ConventionRow shows one naming convention applied to the sample names.
type ConventionRow struct {
	Name    string            `json:"name"    yaml:"name"`
	Samples map[string]string `json:"samples" yaml:"samples"`
}

var defaultSamples = []string{"account_id", "HTTPServer", "r#type"}

func conventionsCmd(a *app) *cobra.Command {
	var samples []string

	cmd := &cobra.Command{
		Use:   "conventions [NAME...]",
		Short: "Show the rename_all conventions and their effect on sample field names",
		Example: `  fieldpaths conventions
  fieldpaths conventions camelCase --sample orderID --sample "r#type"`,
		RunE: func(_ *cobra.Command, args []string) error {
			selected := naming.Conventions()
			if len(args) > 0 {
				selected = make([]naming.Convention, 0, len(args))

				for _, name := range args {
					c, err := naming.Parse(name)
					if err != nil {
						return err
					}

					selected = append(selected, c)
				}
			}

			rows := conventionRows(selected, samples)

			if done, err := encode(a.out, a.cfg.Output.Format, rows); done {
				return err
			}

			return writeConventions(a, rows, samples)
		},
	}

	cmd.Flags().StringSliceVarP(&samples, "sample", "s", defaultSamples, "field name to transform (repeatable)")

	return cmd
}

func conventionRows(conventions []naming.Convention, samples []string) []ConventionRow {
	rows := make([]ConventionRow, 0, len(conventions))

	for _, c := range conventions {
		row := ConventionRow{Name: c.Name(), Samples: make(map[string]string, len(samples))}
		for _, s := range samples {
			row.Samples[s] = c.Apply(naming.Sanitize(s))
		}

		rows = append(rows, row)
	}

	return rows
}

func writeConventions(a *app, rows []ConventionRow, samples []string) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "CONVENTION\t"+strings.Join(samples, "\t"))

	for _, row := range rows {
		cells := make([]string, len(samples))
		for i, s := range samples {
			cells[i] = row.Samples[s]
		}

		fmt.Fprintln(w, row.Name+"\t"+strings.Join(cells, "\t"))
	}

	return w.Flush()
}
