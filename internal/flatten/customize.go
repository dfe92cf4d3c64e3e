package flatten

import (
	"fieldpaths/internal/naming"
	"fieldpaths/internal/shape"
)

// Resolution is the effective treatment of one field.
type Resolution struct {
	Name    string // effective name; meaningful only when Named
	Named   bool
	Skipped bool
	Recurse bool        // descend into Target and prefix its paths with Name
	Target  *shape.Type // resolved record shape of the field type when Recurse
}

// Customize applies the field attributes and the enclosing naming policy to f.
//
// Precedence: skip short-circuits everything; otherwise the declared name is
// sanitized and passed through policy.RenameAll, then a field-level rename
// replaces it unconditionally. The field type is resolved only when the field
// is nested, so skipped and atomic fields may point at undescribed types.
func Customize(f *shape.Field, policy shape.Policy) (Resolution, error) {
	if f.Attrs.Skip {
		return Resolution{Skipped: true}, nil
	}

	var res Resolution

	if f.IsNamed() {
		res.Name = policy.RenameAll.Apply(naming.Sanitize(f.Name))
		res.Named = true
	}

	if f.Attrs.HasRename {
		res.Name = f.Attrs.Rename
		res.Named = true
	}

	if !f.Attrs.Nested {
		return res, nil
	}

	target, err := shape.Resolve(f.Type)
	if err != nil {
		return Resolution{}, err
	}

	if target.Kind == shape.KindRecord {
		res.Recurse = true
		res.Target = target
	}

	return res, nil
}
