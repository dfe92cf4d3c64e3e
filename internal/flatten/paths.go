package flatten

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Separator joins the segments of a leaf path.
const Separator = "."

// Join builds a leaf path from its segments.
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// Split returns the segments of a leaf path.
func Split(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, Separator)
}

// LeafPaths is the immutable set of leaf paths of a record type.
// A nil *LeafPaths stands for a terminal type, which has no paths of its own.
type LeafPaths struct {
	sorted []string
	index  map[string]struct{}
}

func newLeafPaths(set map[string]struct{}) *LeafPaths {
	return &LeafPaths{
		sorted: slices.Sorted(maps.Keys(set)),
		index:  set,
	}
}

// Len returns the number of paths.
func (p *LeafPaths) Len() int {
	if p == nil {
		return 0
	}

	return len(p.sorted)
}

// Contains reports whether path is one of the leaf paths.
func (p *LeafPaths) Contains(path string) bool {
	if p == nil {
		return false
	}

	_, ok := p.index[path]

	return ok
}

// Slice returns the paths in lexical order. The slice is a copy.
func (p *LeafPaths) Slice() []string {
	if p == nil {
		return nil
	}

	return slices.Clone(p.sorted)
}

// All iterates over the paths in lexical order.
func (p *LeafPaths) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if p == nil {
			return
		}

		for _, path := range p.sorted {
			if !yield(path) {
				return
			}
		}
	}
}

// Under returns the paths below prefix with the prefix removed.
// Under("customer") of {"customer.id", "customer.name", "id"} is {"id", "name"}.
func (p *LeafPaths) Under(prefix string) []string {
	var out []string

	for path := range p.All() {
		if rest, ok := strings.CutPrefix(path, prefix+Separator); ok {
			out = append(out, rest)
		}
	}

	return out
}

// Tree returns the paths as nested maps keyed by segment; leaves map to nil.
// A segment that is both a leaf and the prefix of longer paths (a field
// renamed to "a.b" next to a field "a") maps to its children, with the empty
// key marking the leaf itself.
func (p *LeafPaths) Tree() map[string]any {
	root := make(map[string]any)

	for path := range p.All() {
		node := root
		segments := Split(path)

		for i, seg := range segments {
			existing, seen := node[seg]
			child, isParent := existing.(map[string]any)

			if i == len(segments)-1 {
				switch {
				case isParent:
					child[TreeLeaf] = nil
				case !seen:
					node[seg] = nil
				}

				break
			}

			if !isParent {
				child = make(map[string]any)
				if seen {
					child[TreeLeaf] = nil
				}

				node[seg] = child
			}

			node = child
		}
	}

	return root
}

// TreeLeaf is the key Tree uses for a leaf that also has children.
const TreeLeaf = ""

// String returns the paths as "{a, b.c}".
func (p *LeafPaths) String() string {
	if p == nil {
		return "<terminal>"
	}

	return "{" + strings.Join(p.sorted, ", ") + "}"
}
