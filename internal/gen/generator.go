package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"

	"fieldpaths/internal/flatten"
	"fieldpaths/internal/naming"
	"fieldpaths/internal/shape"
)

// ErrIdentifierClash is returned when two generated declarations would share a name.
var ErrIdentifierClash = errors.New("generated identifiers clash")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the package clause of the generated file.
	PackageName string
	// Filename is the name of the generated file.
	Filename string
	// OutputDir receives an unformatted copy of the file when formatting fails.
	OutputDir string
	// GenerateComments enables doc comments on the generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         "fieldpaths_gen.go",
		GenerateComments: true,
	}
}

// Target is a type together with its computed leaf paths.
type Target struct {
	Type  *shape.Type
	Paths *flatten.LeafPaths
}

// Generator renders leaf paths as Go declarations: one string constant per
// path and an array listing all of them.
//
//	const (
//		OrderCustomerId = "customer.id"
//		OrderTotal      = "total"
//	)
//
//	var OrderFieldPaths = [...]string{
//		OrderCustomerId,
//		OrderTotal,
//	}
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "fieldpaths_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

type templateData struct {
	PackageName string
	Comments    bool
	Types       []typeData
}

type typeData struct {
	Name   string // identifier prefix
	Source string // type as written in comments
	Consts []pathConst
}

type pathConst struct {
	Ident string
	Path  string
}

// Generate renders one file declaring the paths of every target, in order.
func (g *Generator) Generate(targets []Target) (*GeneratedFile, error) {
	if !token.IsIdentifier(g.config.PackageName) {
		return nil, fmt.Errorf("invalid package name %q", g.config.PackageName)
	}

	data := &templateData{
		PackageName: g.config.PackageName,
		Comments:    g.config.GenerateComments,
	}

	// identifier -> what it was generated for
	declared := make(map[string]string)

	for _, target := range targets {
		td, err := buildTypeData(target)
		if err != nil {
			return nil, err
		}

		for _, c := range td.Consts {
			if err := declare(declared, c.Ident, fmt.Sprintf("path %q of %s", c.Path, td.Source)); err != nil {
				return nil, err
			}
		}

		if err := declare(declared, td.Name+"FieldPaths", "the path list of "+td.Source); err != nil {
			return nil, err
		}

		data.Types = append(data.Types, td)
	}

	var buf bytes.Buffer
	if err := pathsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, g.config.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

func buildTypeData(target Target) (typeData, error) {
	t := target.Type
	if t == nil || !t.IsNamed() {
		return typeData{}, fmt.Errorf("cannot generate paths for unnamed type %s", t)
	}

	if target.Paths == nil {
		return typeData{}, fmt.Errorf("%s has no field paths: it is a leaf type", t)
	}

	td := typeData{Name: t.ID.Name, Source: t.String()}

	for path := range target.Paths.All() {
		ident := pathIdent(t.ID.Name, path)
		if !token.IsIdentifier(ident) {
			return typeData{}, fmt.Errorf("path %q of %s does not form an identifier (%q)", path, t, ident)
		}

		td.Consts = append(td.Consts, pathConst{Ident: ident, Path: path})
	}

	return td, nil
}

// pathIdent joins the type name and the PascalCase path segments:
// ("Order", "customer.address_line") -> "OrderCustomerAddressLine".
func pathIdent(typeName, path string) string {
	var b strings.Builder

	b.WriteString(typeName)

	for _, seg := range flatten.Split(path) {
		b.WriteString(naming.Pascal.Apply(seg))
	}

	return b.String()
}

func declare(declared map[string]string, ident, what string) error {
	if prev, ok := declared[ident]; ok {
		return fmt.Errorf("%w: %s for %s and %s", ErrIdentifierClash, ident, prev, what)
	}

	declared[ident] = what

	return nil
}

var pathsTemplate = template.Must(template.New("paths").Parse(`// Code generated by fieldpaths. DO NOT EDIT.

package {{.PackageName}}
{{range .Types}}
{{if .Consts}}{{if $.Comments}}// Leaf field paths of {{.Source}}.
{{end}}const (
{{range .Consts}}	{{.Ident}} = {{printf "%q" .Path}}
{{end}})
{{end}}
{{if $.Comments}}// {{.Name}}FieldPaths lists the leaf field paths of {{.Source}} in lexical order.
{{end}}var {{.Name}}FieldPaths = [...]string{ {{- if .Consts}}
{{range .Consts}}	{{.Ident}},
{{end}}{{end}}}
{{end}}`))
