package flatten

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"fieldpaths/internal/logger"
	"fieldpaths/internal/shape"
)

// ErrCyclicType is returned for types that reach themselves through fields
// the flattener would descend into.
var ErrCyclicType = errors.New("cyclic type graph")

// Flattener computes leaf paths and memoizes them per type.
//
// Each type is computed at most once: concurrent first queries for the same
// type wait for a single computation, and later queries read the cached
// result without locking. Failed computations are not cached; a later query
// runs again and fails the same way.
type Flattener struct {
	cache    cache
	log      logger.Logger
	computed atomic.Int64
	hits     atomic.Int64
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithLogger sets the logger used to report computations.
func WithLogger(l logger.Logger) Option {
	return func(f *Flattener) {
		f.log = l
	}
}

// New creates a Flattener with an empty cache.
func New(opts ...Option) *Flattener {
	f := &Flattener{log: logger.Discard()}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Stats are cache counters.
type Stats struct {
	Computed int64 // records whose paths were computed
	Hits     int64 // queries answered from the cache
}

// Stats returns a snapshot of the cache counters.
func (f *Flattener) Stats() Stats {
	return Stats{Computed: f.computed.Load(), Hits: f.hits.Load()}
}

// LeafPaths returns the leaf paths of t. The result is nil for terminal
// types and for records that declare no fields.
//
// For records, each field contributes according to Customize: its bare
// effective name when it is a leaf, or its name joined with every nested
// path when it recurses. Unnamed fields that recurse contribute the nested
// paths unqualified, which is how embedded structs and union variants expose
// their fields. Duplicate paths collapse.
func (f *Flattener) LeafPaths(t *shape.Type) (*LeafPaths, error) {
	resolved, err := shape.Resolve(t)
	if err != nil {
		return nil, err
	}

	if resolved.Kind == shape.KindTerminal {
		return nil, nil
	}

	if e, ok := f.cache.cell(resolved).load(); ok {
		f.hits.Add(1)
		return e.paths, nil
	}

	// Cell locks are taken along field edges; an acyclic graph keeps that
	// order deadlock-free.
	if err := f.checkAcyclic(resolved); err != nil {
		return nil, err
	}

	return f.compute(resolved)
}

// compute returns the paths of record t, computing them under t's cell lock.
func (f *Flattener) compute(t *shape.Type) (*LeafPaths, error) {
	c := f.cache.cell(t)
	if e, ok := c.load(); ok {
		f.hits.Add(1)
		return e.paths, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.load(); ok {
		f.hits.Add(1)
		return e.paths, nil
	}

	paths, err := f.flatten(t)
	if err != nil {
		return nil, err
	}

	c.value.Store(&entry{paths: paths})
	f.computed.Add(1)
	f.log.Debug("computed leaf paths", "type", t.String(), "count", paths.Len())

	return paths, nil
}

func (f *Flattener) flatten(t *shape.Type) (*LeafPaths, error) {
	if len(t.Fields) == 0 {
		return nil, nil
	}

	set := make(map[string]struct{})

	for i := range t.Fields {
		field := &t.Fields[i]

		res, err := Customize(field, t.Policy)
		if err != nil {
			return nil, fieldError(t, field, err)
		}

		if res.Skipped {
			continue
		}

		if !res.Recurse {
			if res.Named {
				set[res.Name] = struct{}{}
			}

			continue
		}

		nested, err := f.compute(res.Target)
		if err != nil {
			return nil, fieldError(t, field, err)
		}

		switch {
		case nested == nil:
			if res.Named {
				set[res.Name] = struct{}{}
			}
		case res.Named:
			for p := range nested.All() {
				set[Join(res.Name, p)] = struct{}{}
			}
		default:
			for p := range nested.All() {
				set[p] = struct{}{}
			}
		}
	}

	return newLeafPaths(set), nil
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// checkAcyclic walks the records reachable from root through recursing
// fields and fails on the first cycle. Subgraphs that are already cached are
// known to be acyclic and are not walked again.
func (f *Flattener) checkAcyclic(root *shape.Type) error {
	state := make(map[*shape.Type]visitState)

	var stack []*shape.Type

	var visit func(t *shape.Type) error

	visit = func(t *shape.Type) error {
		switch state[t] {
		case visiting:
			return cycleError(stack, t)
		case visited:
			return nil
		case unvisited:
		}

		if f.cache.done(t) {
			state[t] = visited
			return nil
		}

		state[t] = visiting
		stack = append(stack, t)

		for i := range t.Fields {
			field := &t.Fields[i]

			res, err := Customize(field, t.Policy)
			if err != nil {
				return fieldError(t, field, err)
			}

			if !res.Recurse {
				continue
			}

			if err := visit(res.Target); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[t] = visited

		return nil
	}

	return visit(root)
}

func cycleError(stack []*shape.Type, back *shape.Type) error {
	start := 0

	for i, t := range stack {
		if t == back {
			start = i
			break
		}
	}

	names := make([]string, 0, len(stack)-start+1)
	for _, t := range stack[start:] {
		names = append(names, t.String())
	}

	names = append(names, back.String())

	return fmt.Errorf("%w: %s", ErrCyclicType, strings.Join(names, " -> "))
}

func fieldError(t *shape.Type, field *shape.Field, err error) error {
	name := field.Name
	if name == "" {
		name = "(" + field.Type.String() + ")"
	}

	return fmt.Errorf("%s field %s: %w", t, name, err)
}
