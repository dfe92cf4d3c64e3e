// Package gen emits Go source declaring the leaf paths of described types,
// so code can refer to paths through compile-time constants:
//
//	filter := map[string]any{store.OrderCustomerEmail: email}
//
// Generation uses text/template + go/format; output is deterministic for a
// given set of types.
package gen
