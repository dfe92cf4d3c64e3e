package analyze

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"fieldpaths/internal/shape"
)

// ErrAlreadyDescribed is returned when a registration would change the
// description of a type that has already been handed out.
var ErrAlreadyDescribed = errors.New("type already described")

var (
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
)

// Reflector describes Go types at runtime using reflect and fields tags.
//
// Descriptions are memoized per reflect.Type, so the same type always maps
// to the same *shape.Type. Unions and extra terminals must be registered
// before the types involved are first described.
type Reflector struct {
	mu        sync.Mutex
	types     map[reflect.Type]*shape.Type
	unions    map[reflect.Type][]reflect.Type
	terminals map[reflect.Type]struct{}
}

// NewReflector creates a Reflector that knows time.Time and time.Duration as terminals.
func NewReflector() *Reflector {
	return &Reflector{
		types:  make(map[reflect.Type]*shape.Type),
		unions: make(map[reflect.Type][]reflect.Type),
		terminals: map[reflect.Type]struct{}{
			reflect.TypeFor[time.Time]():     {},
			reflect.TypeFor[time.Duration](): {},
		},
	}
}

// RegisterUnion declares iface, an interface type, as a sum type whose
// variants are the given types. Every variant must implement iface.
func (r *Reflector) RegisterUnion(iface reflect.Type, variants ...reflect.Type) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return fmt.Errorf("union %v: not an interface type", iface)
	}

	if len(variants) == 0 {
		return fmt.Errorf("union %v: no variants", iface)
	}

	for _, v := range variants {
		if v == nil || !v.Implements(iface) {
			return fmt.Errorf("union %v: variant %v does not implement it", iface, v)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[iface]; ok {
		return fmt.Errorf("union %v: %w", iface, ErrAlreadyDescribed)
	}

	r.unions[iface] = append([]reflect.Type(nil), variants...)

	return nil
}

// RegisterTerminal declares t as a leaf type regardless of its structure.
func (r *Reflector) RegisterTerminal(t reflect.Type) error {
	if t == nil {
		return errors.New("terminal: nil type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[t]; ok {
		return fmt.Errorf("terminal %v: %w", t, ErrAlreadyDescribed)
	}

	r.terminals[t] = struct{}{}

	return nil
}

// Describe returns the structural description of t.
//
// Types the reflector cannot describe (functions, channels, unregistered
// interfaces) become shape.KindUnknown placeholders; they only fail when a
// query has to look inside them. Malformed fields tags fail immediately and
// leave no partial description behind.
func (r *Reflector) Describe(t reflect.Type) (*shape.Type, error) {
	if t == nil {
		return nil, errors.New("describe: nil type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	added := make([]reflect.Type, 0, 8)

	st, err := r.describe(t, &added)
	if err != nil {
		for _, a := range added {
			delete(r.types, a)
		}

		return nil, err
	}

	return st, nil
}

func (r *Reflector) describe(t reflect.Type, added *[]reflect.Type) (*shape.Type, error) {
	if st, ok := r.types[t]; ok {
		return st, nil
	}

	// Pre-register so recursive references resolve to the same node.
	st := &shape.Type{ID: reflectID(t)}
	r.types[t] = st
	*added = append(*added, t)

	if r.isTerminal(t) {
		st.Kind = shape.KindTerminal
		return st, nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		return st, r.describeWrapper(st, shape.WrapOptional, t.Elem(), added)

	case reflect.Slice, reflect.Array:
		return st, r.describeWrapper(st, shape.WrapList, t.Elem(), added)

	case reflect.Map:
		if isSetElem(t.Elem()) {
			return st, r.describeWrapper(st, shape.WrapSet, t.Key(), added)
		}

		return st, r.describeWrapper(st, shape.WrapMap, t.Elem(), added)

	case reflect.Struct:
		return st, r.describeStruct(st, t, added)

	case reflect.Interface:
		variants, ok := r.unions[t]
		if !ok {
			return st, nil
		}

		st.Kind = shape.KindRecord
		st.Union = true

		for _, v := range variants {
			vt, err := r.describe(v, added)
			if err != nil {
				return nil, fmt.Errorf("union %s variant %v: %w", st.ID, v, err)
			}

			st.Fields = append(st.Fields, shape.Field{Type: vt, Attrs: shape.DefaultAttributes()})
		}

		return st, nil

	default:
		// functions, channels, unsafe pointers: no structure to describe
		return st, nil
	}
}

func (r *Reflector) describeWrapper(st *shape.Type, kind shape.WrapperKind, elem reflect.Type, added *[]reflect.Type) error {
	st.Kind = shape.KindWrapper
	st.Wrapper = kind

	et, err := r.describe(elem, added)
	if err != nil {
		return err
	}

	st.Elem = et

	return nil
}

func (r *Reflector) describeStruct(st *shape.Type, t reflect.Type, added *[]reflect.Type) error {
	st.Kind = shape.KindRecord

	for i := range t.NumField() {
		sf := t.Field(i)

		if sf.Name == "_" {
			value, ok := sf.Tag.Lookup(TagName)
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

		if !sf.IsExported() && !sf.Anonymous {
			continue
		}

		attrs, err := ParseFieldTag(sf.Tag)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", st.ID, sf.Name, err)
		}

		field := shape.Field{Name: sf.Name, Attrs: attrs}

		if attrs.Skip || !attrs.Nested {
			// never looked into, so left undescribed
			field.Type = shape.Unknown(reflectID(sf.Type))
		} else {
			ft, err := r.describe(sf.Type, added)
			if err != nil {
				return err
			}

			field.Type = ft

			if sf.Anonymous && promotes(ft) {
				field.Name = ""
			}
		}

		st.Fields = append(st.Fields, field)
	}

	return nil
}

// promotes reports whether an embedded field of type t lends its fields to
// the enclosing record. Other embedded fields (named scalars, slices,
// terminals) are single fields named after their type, as in encoding/json.
// Unknown types are kept unnamed: they are either interfaces whose variants
// are still pending or gaps that fail when reached.
func promotes(t *shape.Type) bool {
	if t.Kind == shape.KindWrapper && t.Wrapper == shape.WrapOptional && t.Elem != nil {
		t = t.Elem
	}

	return t.Kind == shape.KindRecord || t.Kind == shape.KindUnknown
}

func (r *Reflector) isTerminal(t reflect.Type) bool {
	if _, ok := r.terminals[t]; ok {
		return true
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	case reflect.Interface:
		return false
	default:
	}

	// types that serialize themselves as a single value
	for _, m := range []reflect.Type{textMarshalerType, jsonMarshalerType} {
		if t.Implements(m) || (t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(m)) {
			return true
		}
	}

	return false
}

// isSetElem reports whether a map with this element type is used as a set.
func isSetElem(elem reflect.Type) bool {
	return elem.Kind() == reflect.Bool || (elem.Kind() == reflect.Struct && elem.NumField() == 0)
}

func reflectID(t reflect.Type) shape.TypeID {
	if t.Name() == "" {
		return shape.TypeID{Name: t.String()}
	}

	return shape.TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
}
