package describe

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"fieldpaths/internal/diagnostic"
	"fieldpaths/internal/naming"
	"fieldpaths/internal/shape"
)

// ErrInvalidDescription is returned for description files that cannot be parsed or built.
var ErrInvalidDescription = errors.New("invalid description")

// ErrUnknownType is returned by Catalog.Lookup for names that are not described.
var ErrUnknownType = errors.New("type not described")

// terminals are the leaf type names every description can use.
var terminals = []string{
	"bool", "string", "char", "byte", "rune", "bytes",
	"int", "int8", "int16", "int32", "int64", "int128",
	"uint", "uint8", "uint16", "uint32", "uint64", "uint128", "uintptr",
	"float32", "float64", "complex64", "complex128", "decimal",
	"date", "time", "datetime", "timestamp", "duration",
	"uuid", "url", "path",
}

type wrapperSpec struct {
	kind  shape.WrapperKind
	arity int
	elem  int // index of the argument the wrapper is transparent to
}

// wrappers maps type-expression names to the container they stand for.
var wrappers = map[string]wrapperSpec{
	"option":     {shape.WrapOptional, 1, 0},
	"box":        {shape.WrapBox, 1, 0},
	"list":       {shape.WrapList, 1, 0},
	"vec":        {shape.WrapList, 1, 0},
	"linkedlist": {shape.WrapList, 1, 0},
	"deque":      {shape.WrapDeque, 1, 0},
	"heap":       {shape.WrapHeap, 1, 0},
	"set":        {shape.WrapSet, 1, 0},
	"btreeset":   {shape.WrapOrderedSet, 1, 0},
	"map":        {shape.WrapMap, 2, 1},
	"btreemap":   {shape.WrapMap, 2, 1},
	"result":     {shape.WrapResult, 2, 0},
}

// Catalog holds the types built from a description file.
type Catalog struct {
	pkg   string
	names []string // declaration order
	types map[string]*shape.Type
}

// Names returns the described type names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Lookup returns the described type with the given name. Names may be
// qualified with the file's package.
func (c *Catalog) Lookup(name string) (*shape.Type, error) {
	if t, ok := c.types[name]; ok {
		return t, nil
	}

	if c.pkg != "" {
		if bare, ok := strings.CutPrefix(name, c.pkg+"."); ok {
			if t, ok := c.types[bare]; ok {
				return t, nil
			}
		}
	}

	hint := ""
	if best, ok := naming.Suggest(name, c.names); ok {
		hint = fmt.Sprintf(" (did you mean %q?)", best)
	}

	return nil, fmt.Errorf("%w: %q%s", ErrUnknownType, name, hint)
}

// Load reads, validates and builds a description file. Warnings are returned
// alongside a catalog; any error diagnostic fails the load.
func Load(path string) (*Catalog, diagnostic.Diagnostics, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	catalog, diags := Build(f)
	if !diags.IsValid() {
		return nil, diags, fmt.Errorf("%w %s: %w", ErrInvalidDescription, path, diags.Error())
	}

	return catalog, diags, nil
}

// Build turns a parsed description into shape types.
//
// Problems are collected as diagnostics rather than returned one at a time;
// the catalog is nil when any of them is an error. Type names that are
// neither built in nor described become gaps: they are reported as warnings
// and only fail a query that has to look inside them.
func Build(f *File) (*Catalog, diagnostic.Diagnostics) {
	b := &builder{
		types: make(map[string]*shape.Type),
		gaps:  make(map[string]*shape.Type),
		leafs: make(map[string]*shape.Type),
	}

	if f == nil {
		b.diags.AddError("description_is_nil", "description is nil", "", "")
		return nil, b.diags
	}

	b.file = f

	if !b.validate() {
		return nil, b.diags
	}

	b.declare()

	for i := range f.Types {
		b.fill(&f.Types[i])
	}

	if b.diags.HasErrors() {
		return nil, b.diags
	}

	catalog := &Catalog{pkg: f.Package, types: b.types}
	for _, def := range f.Types {
		catalog.names = append(catalog.names, def.Name)
	}

	return catalog, b.diags
}

type builder struct {
	file  *File
	diags diagnostic.Diagnostics
	types map[string]*shape.Type // described, by name
	gaps  map[string]*shape.Type // referenced but not described
	leafs map[string]*shape.Type // built-in terminals in use
}

// validate checks the static constraints declared on the schema.
func (b *builder) validate() bool {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	err := v.Struct(b.file)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		b.diags.AddError("invalid_description", err.Error(), "", "")
		return false
	}

	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "File.")
		b.diags.AddError("invalid_value", validationMessage(fe), "", path)
	}

	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

// declare creates a node for every described type so fields can refer to
// types declared later in the file.
func (b *builder) declare() {
	for i := range b.file.Types {
		def := &b.file.Types[i]

		if isReserved(def.Name) {
			b.diags.AddError("reserved_name", fmt.Sprintf("%q is a built-in type name", def.Name), def.Name, "")
			continue
		}

		if _, ok := b.types[def.Name]; ok {
			b.diags.AddError("duplicate_type", fmt.Sprintf("type %q is described more than once", def.Name), def.Name, "")
			continue
		}

		id := shape.TypeID{PkgPath: b.file.Package, Name: def.Name}

		switch {
		case def.Terminal:
			if len(def.Fields) > 0 || def.IsUnion() {
				b.diags.AddError("terminal_with_fields", "a terminal type cannot declare fields or variants", def.Name, "")
			}

			b.types[def.Name] = shape.NewTerminal(id)
		case def.IsUnion():
			if len(def.Fields) > 0 {
				b.diags.AddError("fields_and_variants", "a type declares either fields or variants", def.Name, "")
			}

			b.types[def.Name] = shape.NewUnion(id, shape.Policy{})
		default:
			b.types[def.Name] = shape.NewRecord(id, shape.Policy{})
		}
	}
}

// fill builds the fields of a declared record or union.
func (b *builder) fill(def *TypeDef) {
	st, ok := b.types[def.Name]
	if !ok || def.Terminal {
		return
	}

	// a duplicate definition must not overwrite the first one
	if b.owner(def.Name) != def {
		return
	}

	policy, err := naming.Parse(def.RenameAll)
	if err != nil {
		b.addWithSuggestion(diagnostic.DiagnosticError, "unknown_convention",
			fmt.Sprintf("unknown naming convention %q", def.RenameAll), def.Name, "rename_all",
			def.RenameAll, naming.Names())
	}

	st.Policy = shape.Policy{RenameAll: policy}

	seen := make(map[string]bool)

	for i := range def.Fields {
		fd := &def.Fields[i]
		b.checkDuplicate(seen, def.Name, fd.Name, fd.Name)

		if f, ok := b.field(def.Name, fd.Name, fd); ok {
			st.Fields = append(st.Fields, f)
		}
	}

	variants := make(map[string]bool)

	for i := range def.Variants {
		vd := &def.Variants[i]
		path := "variants." + vd.Name

		if variants[vd.Name] {
			b.diags.AddError("duplicate_variant", fmt.Sprintf("variant %q is declared more than once", vd.Name), def.Name, path)
		}

		variants[vd.Name] = true

		if vd.Wraps != "" && len(vd.Fields) > 0 {
			b.diags.AddError("wraps_and_fields", "a variant either wraps a type or declares fields", def.Name, path)
			continue
		}

		if vd.Wraps != "" {
			if t := b.typeExpr(vd.Wraps, false, def.Name, path); t != nil {
				st.Fields = append(st.Fields, shape.Field{Type: t, Attrs: shape.DefaultAttributes()})
			}

			continue
		}

		// fields of struct variants belong to the union itself; a name shared
		// by several variants collapses into one path
		variantSeen := make(map[string]bool)

		for j := range vd.Fields {
			fd := &vd.Fields[j]
			b.checkDuplicate(variantSeen, def.Name, path+"."+fd.Name, fd.Name)

			if f, ok := b.field(def.Name, path+"."+fd.Name, fd); ok {
				st.Fields = append(st.Fields, f)
			}
		}
	}
}

// owner returns the first definition with the given name.
func (b *builder) owner(name string) *TypeDef {
	for i := range b.file.Types {
		if b.file.Types[i].Name == name {
			return &b.file.Types[i]
		}
	}

	return nil
}

func (b *builder) checkDuplicate(seen map[string]bool, typ, path, name string) {
	if seen[name] {
		b.diags.AddError("duplicate_field", fmt.Sprintf("field %q is declared more than once", name), typ, path)
	}

	seen[name] = true
}

func (b *builder) field(typ, path string, fd *FieldDef) (shape.Field, bool) {
	attrs := shape.DefaultAttributes()
	attrs.Skip = fd.Skip

	if fd.Rename != nil {
		if *fd.Rename == "" {
			b.diags.AddError("empty_rename", "rename must not be empty", typ, path)
			return shape.Field{}, false
		}

		attrs.Rename, attrs.HasRename = *fd.Rename, true
	}

	if fd.Nested != nil {
		attrs.Nested = *fd.Nested
	}

	if fd.Skip && (fd.Rename != nil || fd.Nested != nil) {
		b.diags.AddInfo("skip_overrides", "field is skipped, its other attributes have no effect", typ, path)
	}

	// fields that are never looked into may name undescribed types freely
	quiet := attrs.Skip || !attrs.Nested

	t := b.typeExpr(fd.Type, quiet, typ, path)
	if t == nil {
		return shape.Field{}, false
	}

	return shape.Field{Name: fd.Name, Type: t, Attrs: attrs}, true
}

func (b *builder) typeExpr(src string, quiet bool, typ, path string) *shape.Type {
	e, err := ParseExpr(src)
	if err != nil {
		b.diags.AddError("invalid_type_expr", err.Error(), typ, path)
		return nil
	}

	return b.resolve(e, quiet, typ, path)
}

func (b *builder) resolve(e Expr, quiet bool, typ, path string) *shape.Type {
	if w, ok := wrappers[e.Name]; ok {
		if len(e.Args) != w.arity {
			b.diags.AddError("wrapper_arity",
				fmt.Sprintf("%s expects %d type argument(s), got %d in %s", e.Name, w.arity, len(e.Args), e), typ, path)

			return nil
		}

		var elem *shape.Type

		for i, arg := range e.Args {
			// arguments the wrapper is not transparent to are never looked into
			t := b.resolve(arg, quiet || i != w.elem, typ, path)
			if t == nil {
				return nil
			}

			if i == w.elem {
				elem = t
			}
		}

		return shape.NewWrapper(w.kind, elem)
	}

	if len(e.Args) > 0 {
		b.diags.AddError("unexpected_type_args", fmt.Sprintf("%s takes no type arguments", e.Name), typ, path)
		return nil
	}

	if t := b.described(e.Name); t != nil {
		return t
	}

	if isTerminal(e.Name) {
		return b.leaf(e.Name)
	}

	if !quiet {
		b.addWithSuggestion(diagnostic.DiagnosticWarning, "undescribed_type",
			fmt.Sprintf("type %q is not described; queries that reach it will fail", e.Name), typ, path,
			e.Name, b.known())
	}

	gap, ok := b.gaps[e.Name]
	if !ok {
		gap = shape.Unknown(shape.TypeID{Name: e.Name})
		b.gaps[e.Name] = gap
	}

	return gap
}

func (b *builder) described(name string) *shape.Type {
	if t, ok := b.types[name]; ok {
		return t
	}

	if b.file.Package != "" {
		if bare, ok := strings.CutPrefix(name, b.file.Package+"."); ok {
			return b.types[bare]
		}
	}

	return nil
}

func (b *builder) leaf(name string) *shape.Type {
	t, ok := b.leafs[name]
	if !ok {
		t = shape.NewTerminal(shape.TypeID{Name: name})
		b.leafs[name] = t
	}

	return t
}

// known returns every name a type expression can refer to.
func (b *builder) known() []string {
	names := make([]string, 0, len(b.file.Types)+len(terminals))
	for _, def := range b.file.Types {
		names = append(names, def.Name)
	}

	return append(names, terminals...)
}

func (b *builder) addWithSuggestion(
	severity diagnostic.DiagnosticSeverity,
	code, message, typ, path, name string,
	candidates []string,
) {
	diag := diagnostic.Diagnostic{
		Severity:  severity,
		Code:      code,
		Message:   message,
		Type:      typ,
		FieldPath: path,
	}

	if best, ok := naming.Suggest(name, candidates); ok {
		diag.Suggestions = []string{best}
	}

	b.diags.Add(diag)
}

func isTerminal(name string) bool {
	return slices.Contains(terminals, name)
}

func isReserved(name string) bool {
	_, wrapper := wrappers[name]
	return wrapper || isTerminal(name)
}
