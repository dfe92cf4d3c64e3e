// Package flatten turns a structural description into the set of leaf field
// paths of a type ("a", "b.nested", "level_1.level_2.c").
//
// The walk is data-driven: every describer (reflection, static analysis,
// YAML) produces shape.Type values and a single Flattener interprets them.
//
// # Field treatment
//
// Customize decides per field, in strict order:
//
//  1. skip: the field contributes nothing
//  2. base name: the declared name, sanitized and passed through the
//     type-level rename_all convention; absent for unnamed fields
//  3. rename: replaces the base name unconditionally
//  4. recurse: nested (default true) and the field type resolves to a record
//
// # Caching
//
// Results are memoized per *shape.Type for the lifetime of the Flattener.
// Computation happens at most once per type, reads of computed results are
// lock-free, and configuration errors are returned without being cached.
// Cyclic type graphs are rejected with ErrCyclicType.
package flatten
