package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldpaths/internal/flatten"
	"fieldpaths/internal/naming"
	"fieldpaths/internal/shape"
)

const (
	storePkg     = "fieldpaths/store"
	warehousePkg = "fieldpaths/warehouse"
)

func loadGraph(t *testing.T, patterns ...string) *Graph {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(context.Background(), patterns...)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func findField(t *testing.T, st *shape.Type, name string) *shape.Field {
	t.Helper()

	for i := range st.Fields {
		if st.Fields[i].Name == name {
			return &st.Fields[i]
		}
	}

	require.Failf(t, "field not found", "%s has no field %s", st.ID, name)

	return nil
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadGraph(t, storePkg, warehousePkg)

	// Check that packages were loaded
	assert.Contains(t, graph.Packages, storePkg)
	assert.Contains(t, graph.Packages, warehousePkg)

	// Check that types were extracted
	assert.Contains(t, graph.Types, shape.TypeID{PkgPath: storePkg, Name: "Order"})
	assert.Contains(t, graph.Types, shape.TypeID{PkgPath: warehousePkg, Name: "Order"})

	// unexported and non-type declarations are left out
	assert.NotContains(t, graph.Types, shape.TypeID{PkgPath: storePkg, Name: "StatusPaid"})
}

func TestAnalyzer_OrderFields(t *testing.T) {
	graph := loadGraph(t, storePkg)

	order := graph.Get(shape.TypeID{PkgPath: storePkg, Name: "Order"})
	require.NotNil(t, order)
	assert.Equal(t, shape.KindRecord, order.Kind)
	assert.Equal(t, naming.Camel, order.Policy.RenameAll)

	assert.Equal(t, shape.KindTerminal, findField(t, order, "Status").Type.Kind)
	assert.Equal(t, shape.KindTerminal, findField(t, order, "Total").Type.Kind, "TextMarshaler is a leaf")

	items := findField(t, order, "Items").Type
	assert.Equal(t, shape.WrapList, items.Wrapper)
	assert.Equal(t, graph.Get(shape.TypeID{PkgPath: storePkg, Name: "OrderItem"}), items.Elem)

	tags := findField(t, order, "Tags").Type
	assert.Equal(t, shape.WrapSet, tags.Wrapper)

	shipping := findField(t, order, "Shipping")
	assert.False(t, shipping.Attrs.Nested)
	assert.Equal(t, shape.KindUnknown, shipping.Type.Kind)

	hooks := findField(t, order, "Hooks")
	assert.True(t, hooks.Attrs.Skip)
}

func TestAnalyzer_EmbeddedFieldIsUnnamed(t *testing.T) {
	graph := loadGraph(t, storePkg)

	customer := graph.Get(shape.TypeID{PkgPath: storePkg, Name: "Customer"})
	require.NotNil(t, customer)
	require.NotEmpty(t, customer.Fields)

	embedded := customer.Fields[0]
	assert.False(t, embedded.IsNamed())
	assert.Equal(t, "Audit", embedded.Type.ID.Name)
}

func TestAnalyzer_EmbeddedLeafKeepsTypeName(t *testing.T) {
	graph := loadGraph(t, storePkg)

	listing := graph.Get(shape.TypeID{PkgPath: storePkg, Name: "Listing"})
	require.NotNil(t, listing)

	barcode := findField(t, listing, "Barcode")
	assert.Equal(t, shape.KindTerminal, barcode.Type.Kind)

	audit := findField(t, listing, "Audit")
	assert.False(t, audit.Attrs.Nested)

	paths, err := flatten.New().LeafPaths(listing)
	require.NoError(t, err)
	assert.Equal(t, []string{"Audit", "Barcode", "Title"}, paths.Slice())
}

func TestAnalyzer_SealedInterfaceIsUnion(t *testing.T) {
	graph := loadGraph(t, storePkg)

	payment := graph.Get(shape.TypeID{PkgPath: storePkg, Name: "Payment"})
	require.NotNil(t, payment)
	assert.Equal(t, shape.KindRecord, payment.Kind)
	assert.True(t, payment.Union)

	var variants []string
	for _, f := range payment.Fields {
		assert.False(t, f.IsNamed())
		variants = append(variants, f.Type.ID.Name)
	}

	// pointer receivers count, sorted by name
	assert.Equal(t, []string{"BankTransfer", "Card", "Voucher"}, variants)
}

func TestAnalyzer_LeafPaths(t *testing.T) {
	graph := loadGraph(t, storePkg)

	order, err := graph.Lookup("store.Order")
	require.NoError(t, err)

	paths, err := flatten.New().LeafPaths(order)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"customer.CreatedAt",
		"customer.UpdatedAt",
		"customer.address.City",
		"customer.address.PostalCode",
		"customer.address.Street",
		"customer.email",
		"customer.fullName",
		"customer.id",
		"customer.preferences",
		"id",
		"items.product.desc",
		"items.product.id",
		"items.product.inventory_count",
		"items.product.name",
		"items.product.price",
		"items.product.sku",
		"items.quantity",
		"items.unitPrice",
		"notes",
		"payment.code",
		"payment.expiry",
		"payment.iban",
		"payment.last4",
		"payment.reference",
		"shipping",
		"status",
		"tags",
		"total",
	}, paths.Slice())
}

func TestAnalyzer_BrokenAssociationsFlatten(t *testing.T) {
	graph := loadGraph(t, warehousePkg)

	order, err := graph.Lookup("warehouse.Order")
	require.NoError(t, err)

	paths, err := flatten.New().LeafPaths(order)
	require.NoError(t, err)

	assert.True(t, paths.Contains("ship_to.postal_code"))
	assert.True(t, paths.Contains("bill_to.country"))
	assert.True(t, paths.Contains("customer.orders"))
	assert.True(t, paths.Contains("items.product.sku"))
	assert.Equal(t, []string{"product.id", "product.sku", "product.weight", "quantity", "unit_price"},
		paths.Under("items"))
}

func TestAnalyzer_CyclicTypeIsRejected(t *testing.T) {
	graph := loadGraph(t, warehousePkg)

	bin, err := graph.Lookup("Bin")
	require.NoError(t, err)

	_, err = flatten.New().LeafPaths(bin)
	require.ErrorIs(t, err, flatten.ErrCyclicType)
}

func TestGraph_Lookup(t *testing.T) {
	graph := loadGraph(t, storePkg, warehousePkg)

	full, err := graph.Lookup(storePkg + ".Order")
	require.NoError(t, err)

	short, err := graph.Lookup("store.Order")
	require.NoError(t, err)
	assert.Same(t, full, short)

	bare, err := graph.Lookup("Voucher")
	require.NoError(t, err)
	assert.Equal(t, "Voucher", bare.ID.Name)

	_, err = graph.Lookup("Order")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = graph.Lookup("store.Ordr")
	require.ErrorIs(t, err, ErrTypeNotFound)
	assert.Contains(t, err.Error(), `did you mean "store.Order"?`)
}

func TestAnalyzer_WithTerminals(t *testing.T) {
	graph, err := NewAnalyzer(WithTerminals(storePkg+".Address")).
		LoadPackages(context.Background(), storePkg)
	require.NoError(t, err)

	customer := graph.Get(shape.TypeID{PkgPath: storePkg, Name: "Customer"})
	require.NotNil(t, customer)

	address := findField(t, customer, "Address").Type
	require.Equal(t, shape.WrapOptional, address.Wrapper)
	assert.Equal(t, shape.KindTerminal, address.Elem.Kind)
}

func TestAnalyzer_PackageErrors(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages(context.Background(), "fieldpaths/does/not/exist")
	require.Error(t, err)
}
