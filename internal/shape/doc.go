// Package shape holds the structural description of types that leaf paths
// are computed from.
//
// Descriptions are plain data produced by the describers (reflection, static
// analysis, YAML) and interpreted by the flattener.
//
// Key types:
//   - TypeID: package import path + type name
//   - Type: kind (terminal/record/wrapper/unknown), fields, naming policy
//   - Field: declared name, type and per-field Attributes
//
// Resolve looks through wrappers (optional, list, map, set, ...) to the
// terminal or record type underneath.
package shape
