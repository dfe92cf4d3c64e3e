package analyze

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"fieldpaths/internal/naming"
	"fieldpaths/internal/shape"
)

// ErrTypeNotFound is returned by Graph.Lookup for names that match no loaded type.
var ErrTypeNotFound = errors.New("type not found")

// Graph holds the descriptions of all exported named types from loaded packages.
type Graph struct {
	// Types maps TypeID to the description of every exported named type.
	Types map[shape.TypeID]*shape.Type
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string         // Import path
	Name  string         // Package name
	Types []shape.TypeID // Exported named types defined in this package
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		Types:    make(map[shape.TypeID]*shape.Type),
		Packages: make(map[string]*PackageInfo),
	}
}

// Get returns the description for a given TypeID, or nil if not found.
func (g *Graph) Get(id shape.TypeID) *shape.Type {
	return g.Types[id]
}

// IDs returns the IDs of all types in the graph, sorted.
func (g *Graph) IDs() []shape.TypeID {
	return slices.SortedFunc(maps.Keys(g.Types), func(a, b shape.TypeID) int {
		return strings.Compare(a.String(), b.String())
	})
}

// Lookup finds a type by name. Accepted forms are the full name
// ("fieldpaths/store.Order"), the package-qualified name ("store.Order"),
// and the bare type name ("Order") when it is unambiguous.
func (g *Graph) Lookup(name string) (*shape.Type, error) {
	pkgPath, typeName := splitQualified(name)

	if t := g.Types[shape.TypeID{PkgPath: pkgPath, Name: typeName}]; t != nil {
		return t, nil
	}

	var matches []shape.TypeID

	for _, id := range g.IDs() {
		if id.Name != typeName {
			continue
		}

		if pkgPath == "" || shape.PkgAlias(id.PkgPath) == pkgPath {
			matches = append(matches, id)
		}
	}

	if len(matches) == 1 {
		return g.Types[matches[0]], nil
	}

	if len(matches) == 0 {
		hint := ""
		if best, ok := naming.Suggest(name, g.names()); ok {
			hint = fmt.Sprintf(" (did you mean %q?)", best)
		}

		return nil, fmt.Errorf("%w: %q%s", ErrTypeNotFound, name, hint)
	}

	names := make([]string, len(matches))
	for i, id := range matches {
		names[i] = id.String()
	}

	return nil, fmt.Errorf("type %q is ambiguous: %s", name, strings.Join(names, ", "))
}

// names returns the short names of all types, for suggestions.
func (g *Graph) names() []string {
	ids := g.IDs()

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.Short())
	}

	return names
}

// splitQualified splits "path/to/pkg.Name" at the last dot.
func splitQualified(name string) (pkgPath, typeName string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", name
	}

	return name[:i], name[i+1:]
}
