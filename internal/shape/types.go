package shape

import (
	"path"

	"fieldpaths/internal/naming"
)

// TypeID identifies a described type by its package path and name.
// Unnamed types carry their type expression in Name and an empty PkgPath.
type TypeID struct {
	PkgPath string // e.g., "fieldpaths/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

const unknownStr = "unknown"

// PkgAlias returns the last element of pkgPath, the name a package is usually
// imported under. It returns "" for an empty path.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// Short returns the TypeID qualified by the last package path element only.
func (t TypeID) Short() string {
	if alias := PkgAlias(t.PkgPath); alias != "" {
		return alias + "." + t.Name
	}

	return t.Name
}

// Kind is the structural kind of a described type.
type Kind int

const (
	KindUnknown  Kind = iota // no structural description available
	KindTerminal             // no nested fields: primitives, strings, times
	KindRecord               // struct-like, or a union of variant fields
	KindWrapper              // transparent container around Elem
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindRecord:
		return "record"
	case KindWrapper:
		return "wrapper"
	default:
		return unknownStr
	}
}

// WrapperKind names the container a KindWrapper type stands for.
// Wrappers never contribute structure of their own.
type WrapperKind int

const (
	WrapNone       WrapperKind = iota
	WrapOptional               // pointer, option<T>
	WrapList                   // slice, array, list<T>
	WrapMap                    // map value, map<K,V>
	WrapSet                    // map[K]struct{}, set<T>
	WrapOrderedSet             // btreeset<T>
	WrapDeque                  // deque<T>
	WrapHeap                   // heap<T>
	WrapResult                 // result<T,E>
	WrapBox                    // box<T>
)

var wrapperNames = [...]string{
	WrapNone:       "none",
	WrapOptional:   "option",
	WrapList:       "list",
	WrapMap:        "map",
	WrapSet:        "set",
	WrapOrderedSet: "btreeset",
	WrapDeque:      "deque",
	WrapHeap:       "heap",
	WrapResult:     "result",
	WrapBox:        "box",
}

// String returns the type-expression spelling of the wrapper.
func (w WrapperKind) String() string {
	if w < WrapNone || int(w) >= len(wrapperNames) {
		return unknownStr
	}

	return wrapperNames[w]
}

// Attributes are the per-field customizations.
// Skip takes precedence over everything else; Rename is ignored for skipped fields.
type Attributes struct {
	Skip      bool   // field contributes no paths
	Rename    string // replaces the (transformed) declared name when HasRename is set
	HasRename bool
	Nested    bool // recurse into the field's type; false keeps the field atomic
}

// DefaultAttributes returns the attributes of a field with no customization.
func DefaultAttributes() Attributes {
	return Attributes{Nested: true}
}

// Policy is the type-level naming policy.
type Policy struct {
	RenameAll naming.Convention
}

// Field describes one field of a record, or one variant of a union.
type Field struct {
	Name  string // declared name; empty for embedded fields and wrapped variants
	Type  *Type
	Attrs Attributes
}

// IsNamed returns true if the field has a declared name.
func (f *Field) IsNamed() bool {
	return f.Name != ""
}

// Type describes the declared shape of a type.
type Type struct {
	ID      TypeID
	Kind    Kind
	Wrapper WrapperKind // for KindWrapper
	Elem    *Type       // for KindWrapper, the wrapped element type
	Fields  []Field     // for KindRecord
	Policy  Policy      // for KindRecord
	Union   bool        // record assembled from the fields of several variants
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *Type) IsNamed() bool {
	return t.ID.Name != ""
}

// String returns a readable type expression, e.g. "store.Order" or "list<store.OrderItem>".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case KindWrapper:
		if t.IsNamed() && t.ID.PkgPath != "" {
			return t.ID.Short()
		}

		return t.Wrapper.String() + "<" + t.Elem.String() + ">"

	case KindRecord:
		if t.IsNamed() {
			return t.ID.Short()
		}

		return "struct{...}"

	case KindTerminal:
		return t.ID.Short()

	default:
		if t.IsNamed() {
			return "<unknown " + t.ID.Short() + ">"
		}

		return "<unknown>"
	}
}

// NewTerminal returns a terminal type.
func NewTerminal(id TypeID) *Type {
	return &Type{ID: id, Kind: KindTerminal}
}

// NewRecord returns a record type with the given policy and fields.
func NewRecord(id TypeID, policy Policy, fields ...Field) *Type {
	return &Type{ID: id, Kind: KindRecord, Policy: policy, Fields: fields}
}

// NewUnion returns a record type whose fields are the merged fields of its variants.
func NewUnion(id TypeID, policy Policy, fields ...Field) *Type {
	return &Type{ID: id, Kind: KindRecord, Policy: policy, Fields: fields, Union: true}
}

// NewWrapper returns a transparent wrapper around elem.
func NewWrapper(kind WrapperKind, elem *Type) *Type {
	return &Type{Kind: KindWrapper, Wrapper: kind, Elem: elem}
}

// Unknown returns a placeholder for a type with no structural description.
func Unknown(id TypeID) *Type {
	return &Type{ID: id, Kind: KindUnknown}
}
