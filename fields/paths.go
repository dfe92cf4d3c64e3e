package fields

import (
	"iter"
	"reflect"

	"fieldpaths/internal/flatten"
)

// Paths is the set of leaf paths of one type. Values are shared between
// callers and must not be modified.
type Paths struct {
	typ   reflect.Type
	paths *flatten.LeafPaths
}

// Type returns the type the paths belong to.
func (p *Paths) Type() reflect.Type {
	return p.typ
}

// IsLeaf reports whether the type has no paths of its own: a terminal type
// or a struct without fields. Such a type is a single leaf when nested in
// another one.
func (p *Paths) IsLeaf() bool {
	return p.paths == nil
}

// Len returns the number of paths.
func (p *Paths) Len() int {
	return p.paths.Len()
}

// Contains reports whether path is a leaf path.
func (p *Paths) Contains(path string) bool {
	return p.paths.Contains(path)
}

// Slice returns the paths in lexical order.
func (p *Paths) Slice() []string {
	return p.paths.Slice()
}

// All iterates over the paths in lexical order.
func (p *Paths) All() iter.Seq[string] {
	return p.paths.All()
}

// Under returns the paths below prefix, with the prefix removed.
func (p *Paths) Under(prefix string) []string {
	return p.paths.Under(prefix)
}

// Tree returns the paths as nested maps keyed by segment.
func (p *Paths) Tree() map[string]any {
	return p.paths.Tree()
}

func (p *Paths) String() string {
	return p.typ.String() + " " + p.paths.String()
}
