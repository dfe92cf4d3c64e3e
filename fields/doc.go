// Package fields lists the leaf field paths of Go types.
//
// A leaf path is the dotted chain of field names from a type down to a field
// that is not descended into:
//
//	type Inner struct{ A, B int }
//
//	type Test struct {
//		_ struct{} `fields:"rename_all=snake_case"`
//
//		Name  string
//		Items map[string]Inner
//		Token string `fields:"-"`
//	}
//
//	fields.MustOf[Test]().Slice() // [items.A items.B name]
//
// The naming convention applies to the fields of the type that declares it;
// Inner keeps its field names.
//
// Pointers, slices, arrays, maps and sets are transparent: they have the
// shape of their element. Embedded structs are flattened into the embedding
// struct. Interfaces registered with RegisterUnion are sum types whose
// variants' paths are merged into one set.
//
// Per-field options go in the fields tag: a new name, then any of "skip",
// "nested=false" (or "opaque") and "nested=true" (or "flatten"). A lone "-"
// skips the field. A type-level naming convention is set on a blank field.
//
// Results are computed once per type and cached for the life of the
// resolver. Self-referential types are rejected.
package fields
