package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fieldpaths/internal/config"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the configuration after applying every source",
			RunE: func(_ *cobra.Command, _ []string) error {
				if done, err := encode(a.out, a.cfg.Output.Format, a.cfg); done {
					return err
				}

				// text output is YAML too
				_, err := encode(a.out, FormatYAML, a.cfg)

				return err
			},
		},
		&cobra.Command{
			Use:   "env",
			Short: "List the environment variables read at startup",
			RunE: func(_ *cobra.Command, _ []string) error {
				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)

				fmt.Fprintln(w, "ENVIRONMENT VARIABLE\tCONFIG PATH\tCURRENT VALUE")

				for _, m := range config.EnvMappings() {
					name := config.EnvPrefix + m.EnvVar

					value, ok := os.LookupEnv(name)
					if !ok {
						value = "(not set)"
					}

					fmt.Fprintf(w, "%s\t%s\t%s\n", name, m.ConfigPath, value)
				}

				return w.Flush()
			},
		},
	)

	return cmd
}
