package shape

import (
	"strings"
)

// Outline renders the declared structure of t, one line per field, indented
// by nesting level. Records are expanded up to maxDepth levels below t; a
// record already open on the current branch is marked "(recursive)" instead
// of being expanded again. Skipped and opaque fields are listed but never
// expanded.
//
// Example:
//
//	store.Order (record, rename_all=camelCase)
//	  ID: int64
//	  Items: list<store.OrderItem>
//	    Quantity: int
//	  Shipping: <unknown *store.Address> [opaque]
func Outline(t *Type, maxDepth int) string {
	var b strings.Builder

	b.WriteString(t.String())
	b.WriteString(describeKind(t))
	b.WriteByte('\n')

	if resolved, err := Resolve(t); err == nil && resolved.Kind == KindRecord {
		writeFields(&b, resolved, 1, maxDepth, map[*Type]bool{resolved: true})
	}

	return b.String()
}

func writeFields(b *strings.Builder, t *Type, depth, maxDepth int, open map[*Type]bool) {
	indent := strings.Repeat("  ", depth)

	for i := range t.Fields {
		field := &t.Fields[i]

		b.WriteString(indent)
		b.WriteString(fieldLabel(field, t.Union))
		b.WriteString(": ")
		b.WriteString(field.Type.String())
		b.WriteString(describeAttrs(field.Attrs))

		if field.Attrs.Skip || !field.Attrs.Nested {
			b.WriteByte('\n')
			continue
		}

		resolved, err := Resolve(field.Type)
		if err != nil || resolved.Kind != KindRecord {
			b.WriteByte('\n')
			continue
		}

		if open[resolved] {
			b.WriteString(" (recursive)\n")
			continue
		}

		b.WriteString(describeKind(resolved))
		b.WriteByte('\n')

		if depth >= maxDepth {
			continue
		}

		open[resolved] = true
		writeFields(b, resolved, depth+1, maxDepth, open)
		delete(open, resolved)
	}
}

func fieldLabel(f *Field, variant bool) string {
	switch {
	case f.IsNamed():
		return f.Name
	case variant:
		return "<variant>"
	default:
		return "<embedded>"
	}
}

func describeKind(t *Type) string {
	resolved, err := Resolve(t)
	if err != nil || resolved.Kind != KindRecord {
		return ""
	}

	var parts []string

	if resolved.Union {
		parts = append(parts, "union")
	} else {
		parts = append(parts, "record")
	}

	if name := resolved.Policy.RenameAll.Name(); name != "" {
		parts = append(parts, "rename_all="+name)
	}

	return " (" + strings.Join(parts, ", ") + ")"
}

func describeAttrs(a Attributes) string {
	var parts []string

	if a.Skip {
		parts = append(parts, "skip")
	}

	if a.HasRename {
		parts = append(parts, "rename="+a.Rename)
	}

	if !a.Nested {
		parts = append(parts, "opaque")
	}

	if len(parts) == 0 {
		return ""
	}

	return " [" + strings.Join(parts, ", ") + "]"
}
