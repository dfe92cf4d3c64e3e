package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"fieldpaths/internal/logger"
	"fieldpaths/internal/shape"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and describes their types without running them.
//
// It follows the same rules as Reflector. Interfaces that declare an
// unexported method are sealed: their variants are the named types of the
// declaring package that implement them.
type Analyzer struct {
	graph     *Graph
	typeCache map[types.Type]*shape.Type // Cache to handle recursive types
	terminals map[string]struct{}
	pending   []sealedUnion
	log       logger.Logger
}

type sealedUnion struct {
	st    *shape.Type
	named *types.Named
	iface *types.Interface
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithTerminals declares extra leaf types by full name, e.g. "github.com/shopspring/decimal.Decimal".
func WithTerminals(names ...string) AnalyzerOption {
	return func(a *Analyzer) {
		for _, n := range names {
			a.terminals[n] = struct{}{}
		}
	}
}

// WithAnalyzerLogger sets the logger used to report loading progress.
func WithAnalyzerLogger(l logger.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.log = l
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		graph:     NewGraph(),
		typeCache: make(map[types.Type]*shape.Type),
		terminals: map[string]struct{}{"time.Time": {}, "time.Duration": {}},
		log:       logger.Discard(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and describes their exported types.
// Patterns are standard Go package patterns (e.g., "./store", "fieldpaths/store").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*Graph, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	if err := a.resolveUnions(); err != nil {
		return nil, err
	}

	a.log.Debug("loaded packages", "patterns", strings.Join(patterns, " "), "types", len(a.graph.Types))

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *Graph {
	return a.graph
}

// processPackage describes the exported named types of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	var errs []error

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only exported type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		st, err := a.analyzeType(typeName.Type())
		if err != nil {
			errs = append(errs, err)
			continue
		}

		typeID := shape.TypeID{PkgPath: pkg.PkgPath, Name: name}
		a.graph.Types[typeID] = st
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo

	return errors.Join(errs...)
}

// analyzeType describes a go/types.Type, reusing earlier descriptions.
func (a *Analyzer) analyzeType(t types.Type) (*shape.Type, error) {
	t = types.Unalias(t)

	if cached, ok := a.typeCache[t]; ok {
		return cached, nil
	}

	// Pre-cache to handle recursive types (details are filled in below)
	st := &shape.Type{ID: staticID(t)}
	a.typeCache[t] = st

	if a.isTerminal(t) {
		st.Kind = shape.KindTerminal
		return st, nil
	}

	if err := a.analyzeStructure(st, t); err != nil {
		delete(a.typeCache, t)
		return nil, err
	}

	return st, nil
}

// analyzeStructure fills st from the structure of t.
func (a *Analyzer) analyzeStructure(st *shape.Type, t types.Type) error {
	named, _ := t.(*types.Named)

	switch tt := t.Underlying().(type) {
	case *types.Pointer:
		return a.analyzeWrapper(st, shape.WrapOptional, tt.Elem())

	case *types.Slice:
		return a.analyzeWrapper(st, shape.WrapList, tt.Elem())

	case *types.Array:
		return a.analyzeWrapper(st, shape.WrapList, tt.Elem())

	case *types.Map:
		if isStaticSetElem(tt.Elem()) {
			return a.analyzeWrapper(st, shape.WrapSet, tt.Key())
		}

		return a.analyzeWrapper(st, shape.WrapMap, tt.Elem())

	case *types.Struct:
		return a.analyzeStructFields(st, tt)

	case *types.Interface:
		if named != nil && isSealed(tt) {
			a.pending = append(a.pending, sealedUnion{st: st, named: named, iface: tt})
		}

		return nil

	default:
		// Channels, functions, etc. have no structural description
		return nil
	}
}

func (a *Analyzer) analyzeWrapper(st *shape.Type, kind shape.WrapperKind, elem types.Type) error {
	et, err := a.analyzeType(elem)
	if err != nil {
		return err
	}

	st.Kind = shape.KindWrapper
	st.Wrapper = kind
	st.Elem = et

	return nil
}

// analyzeStructFields extracts fields from a struct type.
func (a *Analyzer) analyzeStructFields(st *shape.Type, s *types.Struct) error {
	st.Kind = shape.KindRecord

	for i := range s.NumFields() {
		field := s.Field(i)
		tag := reflect.StructTag(s.Tag(i))

		if field.Name() == "_" {
			value, ok := tag.Lookup(TagName)
			if !ok {
				continue
			}

			policy, err := ParsePolicyTag(value)
			if err == nil {
				st.Policy, err = mergePolicy(st.Policy, policy)
			}

			if err != nil {
				return fmt.Errorf("%s: %w", st.ID, err)
			}

			continue
		}

		if !field.Exported() && !field.Embedded() {
			continue
		}

		attrs, err := ParseFieldTag(tag)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", st.ID, field.Name(), err)
		}

		sf := shape.Field{Name: field.Name(), Attrs: attrs}

		if attrs.Skip || !attrs.Nested {
			sf.Type = shape.Unknown(staticID(field.Type()))
		} else {
			ft, err := a.analyzeType(field.Type())
			if err != nil {
				return err
			}

			sf.Type = ft

			if field.Embedded() && promotes(ft) {
				sf.Name = ""
			}
		}

		st.Fields = append(st.Fields, sf)
	}

	return nil
}

// resolveUnions turns sealed interfaces into unions of their implementations.
// Describing a variant can reveal further sealed interfaces, so this runs
// until no union is pending.
func (a *Analyzer) resolveUnions() error {
	for len(a.pending) > 0 {
		u := a.pending[0]
		a.pending = a.pending[1:]

		variants := implementations(u.named, u.iface)
		if len(variants) == 0 {
			a.log.Warn("sealed interface has no implementations", "type", u.st.ID.String())
			continue
		}

		fields := make([]shape.Field, 0, len(variants))

		for _, v := range variants {
			vt, err := a.analyzeType(v)
			if err != nil {
				return fmt.Errorf("union %s variant %s: %w", u.st.ID, v.Obj().Name(), err)
			}

			fields = append(fields, shape.Field{Type: vt, Attrs: shape.DefaultAttributes()})
		}

		u.st.Kind = shape.KindRecord
		u.st.Union = true
		u.st.Fields = fields
	}

	return nil
}

// implementations returns the non-interface named types declared next to
// named that implement iface by value or by pointer. Scope names are sorted,
// so the variants are too.
func implementations(named *types.Named, iface *types.Interface) []*types.Named {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}

	var out []*types.Named

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}

		candidate, ok := tn.Type().(*types.Named)
		if !ok || types.IsInterface(candidate) || candidate.TypeParams().Len() > 0 {
			continue
		}

		if types.Implements(candidate, iface) || types.Implements(types.NewPointer(candidate), iface) {
			out = append(out, candidate)
		}
	}

	return out
}

// isTerminal reports whether t is a leaf: a basic type, a declared terminal,
// or a type that marshals itself to a single value.
func (a *Analyzer) isTerminal(t types.Type) bool {
	if named, ok := t.(*types.Named); ok {
		if _, ok := a.terminals[staticID(named).String()]; ok {
			return true
		}
	}

	switch tt := t.Underlying().(type) {
	case *types.Basic:
		return tt.Kind() != types.UnsafePointer && tt.Kind() != types.Invalid
	case *types.Interface:
		return false
	}

	return hasMarshaler(t, "MarshalText") || hasMarshaler(t, "MarshalJSON")
}

// hasMarshaler reports whether t or *t has a method name of type func() ([]byte, error).
func hasMarshaler(t types.Type, name string) bool {
	recv := t
	if _, ok := t.(*types.Pointer); !ok {
		recv = types.NewPointer(t)
	}

	sel := types.NewMethodSet(recv).Lookup(nil, name)
	if sel == nil {
		return false
	}

	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 2 {
		return false
	}

	bytes, ok := sig.Results().At(0).Type().(*types.Slice)
	if !ok || !types.Identical(bytes.Elem(), types.Typ[types.Byte]) {
		return false
	}

	return sig.Results().At(1).Type().String() == "error"
}

// isSealed reports whether iface declares an unexported method.
func isSealed(iface *types.Interface) bool {
	for i := range iface.NumMethods() {
		if !iface.Method(i).Exported() {
			return true
		}
	}

	return false
}

func isStaticSetElem(elem types.Type) bool {
	switch et := elem.Underlying().(type) {
	case *types.Basic:
		return et.Kind() == types.Bool
	case *types.Struct:
		return et.NumFields() == 0
	default:
		return false
	}
}

// staticID identifies t; unnamed types carry their type expression.
func staticID(t types.Type) shape.TypeID {
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return shape.TypeID{Name: types.TypeString(t, (*types.Package).Name)}
	}

	return shape.TypeID{PkgPath: named.Obj().Pkg().Path(), Name: named.Obj().Name()}
}
