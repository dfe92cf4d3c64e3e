package flatten

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pathSet(paths ...string) *LeafPaths {
	m := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		m[p] = struct{}{}
	}

	return newLeafPaths(m)
}

func TestLeafPaths_Accessors(t *testing.T) {
	p := pathSet("id", "customer.name", "customer.id", "items.sku")

	assert.Equal(t, 4, p.Len())
	assert.True(t, p.Contains("customer.id"))
	assert.False(t, p.Contains("customer"))
	assert.Equal(t, []string{"customer.id", "customer.name", "id", "items.sku"}, p.Slice())
	assert.Equal(t, []string{"id", "name"}, p.Under("customer"))
	assert.Empty(t, p.Under("cust"))
	assert.Equal(t, "{customer.id, customer.name, id, items.sku}", p.String())
	assert.Equal(t, p.Slice(), slices.Collect(p.All()))
}

func TestLeafPaths_SliceIsACopy(t *testing.T) {
	p := pathSet("a", "b")

	s := p.Slice()
	s[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, p.Slice())
}

func TestLeafPaths_Nil(t *testing.T) {
	var p *LeafPaths

	assert.Equal(t, 0, p.Len())
	assert.False(t, p.Contains("a"))
	assert.Nil(t, p.Slice())
	assert.Empty(t, slices.Collect(p.All()))
	assert.Empty(t, p.Tree())
	assert.Equal(t, "<terminal>", p.String())
}

func TestLeafPaths_Tree(t *testing.T) {
	p := pathSet("x", "y.a", "y.b", "z.deep.leaf")

	assert.Equal(t, map[string]any{
		"x": nil,
		"y": map[string]any{"a": nil, "b": nil},
		"z": map[string]any{"deep": map[string]any{"leaf": nil}},
	}, p.Tree())
}

func TestLeafPaths_TreeKeepsLeafWithChildren(t *testing.T) {
	assert.Equal(t, map[string]any{
		"a": map[string]any{TreeLeaf: nil, "b": nil},
	}, pathSet("a", "a.b").Tree())

	assert.Equal(t, map[string]any{
		"a": map[string]any{TreeLeaf: nil, "b": map[string]any{"c": nil}},
	}, pathSet("a.b.c", "a").Tree())
}

func TestJoinSplit(t *testing.T) {
	assert.Equal(t, "a.b.c", Join("a", "b", "c"))
	assert.Equal(t, []string{"a", "b", "c"}, Split("a.b.c"))
	assert.Nil(t, Split(""))
}
