package describe

// File is the root of a description file. Package, when set, qualifies every
// described type ("billing" gives "billing.Invoice").
type File struct {
	Version string    `yaml:"version"           validate:"omitempty,oneof=1"`
	Package string    `yaml:"package,omitempty"`
	Types   []TypeDef `yaml:"types"             validate:"required,min=1,dive"`
}

// TypeDef describes one type: a record (Fields), a union (Variants) or a
// declared leaf (Terminal).
type TypeDef struct {
	Name      string       `yaml:"name"                 validate:"required"`
	RenameAll string       `yaml:"rename_all,omitempty"`
	Terminal  bool         `yaml:"terminal,omitempty"`
	Fields    []FieldDef   `yaml:"fields,omitempty"     validate:"dive"`
	Variants  []VariantDef `yaml:"variants,omitempty"   validate:"dive"`
}

// FieldDef describes one record field. Type is a type expression: a terminal
// ("string"), a described type ("Inner") or a wrapper ("map<string, list<Inner>>").
type FieldDef struct {
	Name   string  `yaml:"name"             validate:"required"`
	Type   string  `yaml:"type"             validate:"required"`
	Skip   bool    `yaml:"skip,omitempty"`
	Rename *string `yaml:"rename,omitempty"`
	Nested *bool   `yaml:"nested,omitempty"`
}

// VariantDef describes one union variant. A variant either wraps a type,
// carries its own fields, or carries nothing (a unit variant).
type VariantDef struct {
	Name   string     `yaml:"name"             validate:"required"`
	Wraps  string     `yaml:"wraps,omitempty"`
	Fields []FieldDef `yaml:"fields,omitempty" validate:"dive"`
}

// IsUnion returns true if the type is described by variants.
func (t *TypeDef) IsUnion() bool {
	return len(t.Variants) > 0
}
