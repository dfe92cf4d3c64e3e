package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fieldpaths/internal/config"
	"fieldpaths/internal/logger"
)

// app is the state shared by the subcommands once flags are parsed.
type app struct {
	cfg *config.Config
	log logger.Logger
	out io.Writer
}

// flagPaths binds persistent flags to the config paths they override.
var flagPaths = map[string]string{
	"format":    "output.format",
	"log-level": "log.level",
	"outline":   "output.outline",
	"max-depth": "output.max_depth",
}

// RootCmd builds the fieldpaths command tree.
func RootCmd() *cobra.Command {
	a := &app{}

	var configFile string

	root := &cobra.Command{
		Use:           "fieldpaths",
		Short:         "List the leaf field paths of structured types",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, configFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "YAML config file")
	flags.StringP("format", "f", "", "output format: text, json or yaml")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Bool("outline", false, "also print the declared structure of each type")
	flags.Int("max-depth", 0, "nesting levels expanded by --outline")

	root.AddCommand(
		analyzeCmd(a),
		describeCmd(a),
		genCmd(a),
		conventionsCmd(a),
		configCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, configFile string) error {
	overrides := make(map[string]any)

	for name, path := range flagPaths {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			overrides[path] = f.Value.String()
		}
	}

	cfg, err := config.Load(config.Options{File: configFile, Overrides: overrides})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(cfg.LoggerConfig(cmd.ErrOrStderr()))
	a.out = cmd.OutOrStdout()

	a.log.Debug("configuration loaded", "file", configFile, "format", cfg.Output.Format)

	return nil
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := RootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	return 0
}
