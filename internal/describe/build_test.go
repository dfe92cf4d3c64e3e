package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldpaths/internal/diagnostic"
	"fieldpaths/internal/flatten"
	"fieldpaths/internal/shape"
)

func build(t *testing.T, src string) (*Catalog, diagnostic.Diagnostics) {
	t.Helper()

	f, err := Parse([]byte(src))
	require.NoError(t, err)

	return Build(f)
}

func mustBuild(t *testing.T, src string) *Catalog {
	t.Helper()

	catalog, diags := build(t, src)
	require.True(t, diags.IsValid(), "%v", diags.Error())
	require.NotNil(t, catalog)

	return catalog
}

func paths(t *testing.T, catalog *Catalog, name string) []string {
	t.Helper()

	typ, err := catalog.Lookup(name)
	require.NoError(t, err)

	p, err := flatten.New().LeafPaths(typ)
	require.NoError(t, err)

	return p.Slice()
}

func codes(diags []diagnostic.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}

	return out
}

func TestBuild_MapScenario(t *testing.T) {
	catalog := mustBuild(t, `
types:
  - name: Test
    fields:
      - {name: x, type: string}
      - {name: y, type: "map<string, Inner>"}
  - name: Inner
    fields: [{name: a, type: int}, {name: b, type: int}]
`)

	assert.Equal(t, []string{"x", "y.a", "y.b"}, paths(t, catalog, "Test"))
	assert.Equal(t, []string{"Test", "Inner"}, catalog.Names())
}

func TestBuild_RenameAllAndRawIdentifiers(t *testing.T) {
	catalog := mustBuild(t, `
types:
  - name: Account
    rename_all: camelCase
    fields:
      - {name: account_id, type: int}
      - {name: "r#type", type: string}
`)

	assert.Equal(t, []string{"accountId", "type"}, paths(t, catalog, "Account"))
}

func TestBuild_FieldAttributes(t *testing.T) {
	catalog, diags := build(t, `
types:
  - name: Test
    fields:
      - {name: kept, type: Inner, rename: renamed}
      - {name: atomic, type: Inner, nested: false}
      - {name: hidden, type: Inner, skip: true, rename: never}
      - {name: lazy, type: NotDescribed, skip: true}
  - name: Inner
    fields: [{name: a, type: int}]
`)
	require.True(t, diags.IsValid())

	assert.Equal(t, []string{"atomic", "renamed.a"}, paths(t, catalog, "Test"))
	assert.Empty(t, diags.Warnings, "skipped fields may name undescribed types")
	assert.Equal(t, []string{"skip_overrides"}, codes(diags.Infos))
}

func TestBuild_Unions(t *testing.T) {
	catalog := mustBuild(t, `
types:
  - name: Event
    rename_all: snake_case
    variants:
      - {name: Created, wraps: "box<Created>"}
      - {name: Ping}
      - name: Deleted
        fields: [{name: deletedBy, type: string}, {name: a, type: int}]
  - name: Created
    fields: [{name: a, type: int}, {name: b, type: int}]
`)

	// duplicates across variants collapse
	assert.Equal(t, []string{"a", "b", "deleted_by"}, paths(t, catalog, "Event"))

	event, err := catalog.Lookup("Event")
	require.NoError(t, err)
	assert.True(t, event.Union)
}

func TestBuild_VariantsShareFieldNames(t *testing.T) {
	catalog := mustBuild(t, `
types:
  - name: Event
    variants:
      - name: Created
        fields: [{name: id, type: int}, {name: at, type: datetime}]
      - name: Deleted
        fields: [{name: id, type: int}]
`)

	assert.Equal(t, []string{"at", "id"}, paths(t, catalog, "Event"))
}

func TestBuild_TerminalTypes(t *testing.T) {
	catalog := mustBuild(t, `
types:
  - name: Money
    terminal: true
  - name: Line
    fields:
      - {name: price, type: Money}
      - {name: tags, type: "set<string>"}
      - {name: history, type: "deque<option<Money>>"}
`)

	assert.Equal(t, []string{"history", "price", "tags"}, paths(t, catalog, "Line"))

	money, err := catalog.Lookup("Money")
	require.NoError(t, err)
	assert.Equal(t, shape.KindTerminal, money.Kind)
}

func TestBuild_GapsFailOnlyWhenReached(t *testing.T) {
	catalog, diags := build(t, `
types:
  - name: Test
    fields:
      - {name: ok, type: Inner}
      - {name: ext, type: "option<Externl>"}
  - name: Inner
    fields: [{name: a, type: int}]
  - name: Other
    fields: [{name: b, type: int}]
  - name: External
    terminal: true
`)
	require.True(t, diags.IsValid())
	require.Len(t, diags.Warnings, 1)

	warning := diags.Warnings[0]
	assert.Equal(t, "undescribed_type", warning.Code)
	assert.Equal(t, "Test", warning.Type)
	assert.Equal(t, "ext", warning.FieldPath)
	assert.Equal(t, []string{"External"}, warning.Suggestions)

	assert.Equal(t, []string{"b"}, paths(t, catalog, "Other"))

	test, err := catalog.Lookup("Test")
	require.NoError(t, err)

	_, err = flatten.New().LeafPaths(test)
	require.ErrorIs(t, err, shape.ErrNoShape)
	assert.Contains(t, err.Error(), "Externl")
}

func TestBuild_PackageQualifiedNames(t *testing.T) {
	catalog := mustBuild(t, `
package: billing
types:
  - name: Invoice
    fields: [{name: customer, type: billing.Customer}]
  - name: Customer
    fields: [{name: id, type: int}]
`)

	invoice, err := catalog.Lookup("billing.Invoice")
	require.NoError(t, err)
	assert.Equal(t, "billing.Invoice", invoice.ID.String())

	assert.Equal(t, []string{"customer.id"}, paths(t, catalog, "Invoice"))
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name: "missing required values",
			src: `
types:
  - name: ""
    fields: [{name: a}]
`,
			expected: []string{"invalid_value", "invalid_value"},
		},
		{
			name:     "unsupported version",
			src:      "version: \"2\"\ntypes: [{name: A}]",
			expected: []string{"invalid_value"},
		},
		{
			name: "unknown convention",
			src: `
types:
  - {name: A, rename_all: camelcase, fields: [{name: a, type: int}]}
`,
			expected: []string{"unknown_convention"},
		},
		{
			name: "duplicates",
			src: `
types:
  - name: A
    fields: [{name: a, type: int}, {name: a, type: string}]
  - {name: A, terminal: true}
`,
			expected: []string{"duplicate_type", "duplicate_field"},
		},
		{
			name: "duplicate within a variant",
			src: `
types:
  - name: Event
    variants:
      - {name: Created, fields: [{name: id, type: int}, {name: id, type: string}]}
      - {name: Deleted, fields: [{name: id, type: int}]}
`,
			expected: []string{"duplicate_field"},
		},
		{
			name: "reserved name",
			src: `
types:
  - {name: string, terminal: true}
`,
			expected: []string{"reserved_name"},
		},
		{
			name: "bad type expressions",
			src: `
types:
  - name: A
    fields:
      - {name: a, type: "list<int"}
      - {name: b, type: "map<int>"}
      - {name: c, type: "int<string>"}
`,
			expected: []string{"invalid_type_expr", "wrapper_arity", "unexpected_type_args"},
		},
		{
			name: "ambiguous definitions",
			src: `
types:
  - name: A
    fields: [{name: a, type: int}]
    variants: [{name: V}]
  - name: B
    variants: [{name: V, wraps: A, fields: [{name: x, type: int}]}, {name: V}]
  - {name: C, terminal: true, fields: [{name: a, type: int}]}
`,
			expected: []string{"fields_and_variants", "terminal_with_fields", "wraps_and_fields", "duplicate_variant"},
		},
		{
			name: "empty rename",
			src: `
types:
  - {name: A, fields: [{name: a, type: int, rename: ""}]}
`,
			expected: []string{"empty_rename"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, diags := build(t, tt.src)
			assert.Nil(t, catalog)
			assert.ElementsMatch(t, tt.expected, codes(diags.Errors), "%v", diags.Error())
		})
	}
}

func TestBuild_UnknownConventionSuggestion(t *testing.T) {
	_, diags := build(t, `
types:
  - {name: A, rename_all: snake-case, fields: [{name: a, type: int}]}
`)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, []string{"snake_case"}, diags.Errors[0].Suggestions)
	assert.Contains(t, diags.Errors[0].String(), `did you mean "snake_case"?`)
}

func TestBuild_Nil(t *testing.T) {
	catalog, diags := Build(nil)
	assert.Nil(t, catalog)
	assert.Equal(t, []string{"description_is_nil"}, codes(diags.Errors))
}

func TestCatalog_LookupSuggests(t *testing.T) {
	catalog := mustBuild(t, `
types:
  - {name: Customer, fields: [{name: id, type: int}]}
`)

	_, err := catalog.Lookup("Custmer")
	require.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), `did you mean "Customer"?`)
}
