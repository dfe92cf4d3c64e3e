package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"fieldpaths/internal/gen"
)

func genCmd(a *app) *cobra.Command {
	var (
		patterns   []string
		terminals  []string
		output     string
		pkgName    string
		noComments bool
	)

	cmd := &cobra.Command{
		Use:   "gen [--pkg pattern]... [-o file] TYPE...",
		Short: "Generate Go constants for the leaf paths of types",
		Long: `Loads Go packages like analyze and writes a Go file declaring one string
constant per leaf path of each TYPE, plus a <Type>FieldPaths array listing
them. The package clause defaults to the package of the first TYPE.`,
		Example: `  fieldpaths gen --pkg ./store -o store/fieldpaths_gen.go store.Order store.Customer
  fieldpaths gen --pkg ./store --package paths -o - Order`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, types, err := a.loadTypes(cmd.Context(), patterns, terminals, args)
			if err != nil {
				return err
			}

			paths, err := a.resolvePaths(cmd.Context(), types)
			if err != nil {
				return err
			}

			targets := make([]gen.Target, len(types))
			for i, t := range types {
				targets[i] = gen.Target{Type: t, Paths: paths[i]}
			}

			cfg := gen.DefaultGeneratorConfig()
			cfg.GenerateComments = !noComments
			cfg.PackageName = pkgName

			if cfg.PackageName == "" {
				if info := graph.Packages[types[0].ID.PkgPath]; info != nil {
					cfg.PackageName = info.Name
				}
			}

			if output != "-" {
				cfg.OutputDir, cfg.Filename = filepath.Split(output)
			}

			file, err := gen.NewGenerator(cfg).Generate(targets)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err = a.out.Write(file.Content)
				return err
			}

			written, err := gen.WriteFiles([]gen.GeneratedFile{*file}, filepath.Clean(cfg.OutputDir))
			if err != nil {
				return err
			}

			if len(written) == 0 {
				a.log.Info("field paths up to date", "file", output)
				return nil
			}

			a.log.Info("generated field paths", "file", output, "types", len(targets))

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&patterns, "pkg", "p", nil, "package pattern to load (repeatable)")
	cmd.Flags().StringSliceVar(&terminals, "terminal", nil, "full name of an extra leaf type (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", `output file, or "-" for stdout`)
	cmd.Flags().StringVar(&pkgName, "package", "", "package clause of the generated file")
	cmd.Flags().BoolVar(&noComments, "no-comments", false, "omit doc comments on generated declarations")

	return cmd
}
