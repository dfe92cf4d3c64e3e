package fields

import (
	"errors"
	"fmt"
	"reflect"

	"fieldpaths/internal/analyze"
	"fieldpaths/internal/flatten"
	"fieldpaths/internal/logger"
	"fieldpaths/internal/shape"
)

// Logger receives the resolver's debug output.
type Logger = logger.Logger

// Stats are the cache counters of a Resolver.
type Stats = flatten.Stats

// Resolver describes Go types by reflection and caches their leaf paths.
// It is safe for concurrent use.
type Resolver struct {
	reflector *analyze.Reflector
	flattener *flatten.Flattener
	log       logger.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger of the resolver and its cache.
func WithLogger(l Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// New creates a Resolver with its own registrations and cache.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		reflector: analyze.NewReflector(),
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.flattener = flatten.New(flatten.WithLogger(r.log))

	return r
}

var std = New()

// Default returns the process-wide resolver used by Of, For and the Register functions.
func Default() *Resolver {
	return std
}

// For returns the leaf paths of t.
func (r *Resolver) For(t reflect.Type) (*Paths, error) {
	if t == nil {
		return nil, errors.New("fields: nil type")
	}

	st, err := r.reflector.Describe(t)
	if err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}

	lp, err := r.flattener.LeafPaths(st)
	if err != nil {
		return nil, fmt.Errorf("fields: %v: %w", t, err)
	}

	return &Paths{typ: t, paths: lp}, nil
}

// Outline renders the declared structure of t, expanding nested records
// down to maxDepth levels.
func (r *Resolver) Outline(t reflect.Type, maxDepth int) (string, error) {
	st, err := r.reflector.Describe(t)
	if err != nil {
		return "", fmt.Errorf("fields: %w", err)
	}

	return shape.Outline(st, maxDepth), nil
}

// RegisterUnion declares the interface type iface as a sum type of variants.
// Registration must happen before iface, or a type containing it, is first queried.
func (r *Resolver) RegisterUnion(iface reflect.Type, variants ...reflect.Type) error {
	if err := r.reflector.RegisterUnion(iface, variants...); err != nil {
		return fmt.Errorf("fields: %w", err)
	}

	r.log.Debug("registered union", "type", iface.String(), "variants", len(variants))

	return nil
}

// RegisterTerminal declares t a leaf type.
func (r *Resolver) RegisterTerminal(t reflect.Type) error {
	if err := r.reflector.RegisterTerminal(t); err != nil {
		return fmt.Errorf("fields: %w", err)
	}

	return nil
}

// Stats returns the cache counters.
func (r *Resolver) Stats() Stats {
	return r.flattener.Stats()
}

// Of returns the leaf paths of T using the default resolver.
func Of[T any]() (*Paths, error) {
	return std.For(reflect.TypeFor[T]())
}

// MustOf is like Of but panics on error. Errors are configuration mistakes
// such as malformed fields tags, so it suits package-level variables.
func MustOf[T any]() *Paths {
	p, err := Of[T]()
	if err != nil {
		panic(err)
	}

	return p
}

// In returns the leaf paths of T using r.
func In[T any](r *Resolver) (*Paths, error) {
	return r.For(reflect.TypeFor[T]())
}

// For returns the leaf paths of t using the default resolver.
func For(t reflect.Type) (*Paths, error) {
	return std.For(t)
}

// RegisterUnion declares the interface I a sum type on the default resolver.
// Variants are given as sample values:
//
//	fields.RegisterUnion[Payment](Card{}, &BankTransfer{})
func RegisterUnion[I any](variants ...any) error {
	types := make([]reflect.Type, len(variants))
	for i, v := range variants {
		types[i] = reflect.TypeOf(v)
	}

	return std.RegisterUnion(reflect.TypeFor[I](), types...)
}

// RegisterTerminal declares T a leaf type on the default resolver.
func RegisterTerminal[T any]() error {
	return std.RegisterTerminal(reflect.TypeFor[T]())
}
