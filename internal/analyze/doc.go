// Package analyze builds shape descriptions of Go types.
//
// Two describers share one set of rules:
//   - Reflector works on reflect.Type at runtime
//   - Analyzer loads source packages with golang.org/x/tools/go/packages
//
// Struct fields are read through the fields tag (see TagName). Embedded
// fields are unnamed, so their paths are promoted. Pointers, slices, arrays
// and maps are transparent wrappers; maps to struct{} or bool are sets.
// Basic types, time.Time and types that marshal themselves to text or JSON
// are leaves. Interfaces become unions: registered ones for Reflector,
// sealed ones (with an unexported method) for Analyzer. Anything else is
// left undescribed and only fails when a query needs its structure.
package analyze
