// Package describe builds shape descriptions from YAML files, for types that
// are not Go types at all (wire formats, other languages, documentation).
//
// A description lists types with either fields or variants:
//
//	version: "1"
//	types:
//	  - name: Test
//	    rename_all: camelCase
//	    fields:
//	      - {name: x, type: string}
//	      - {name: y, type: "map<string, Inner>"}
//	  - name: Inner
//	    fields: [{name: a, type: int}, {name: b, type: int}]
//
// Field types are type expressions (see ParseExpr). Wrappers such as option,
// list, map, set and result are transparent. Problems are reported as
// diagnostic.Diagnostics with codes and did-you-mean suggestions.
package describe
