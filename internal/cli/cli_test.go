package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var ordersFile = filepath.Join("..", "describe", "testdata", "orders.yaml")

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	code := Execute(args, &stdout, &stderr)

	return stdout.String(), stderr.String(), code
}

func TestDescribe_Text(t *testing.T) {
	stdout, stderr, code := run(t, "describe", ordersFile, "billing.Order")
	require.Zero(t, code, stderr)

	assert.Equal(t, strings.Join([]string{
		"audit",
		"customer.address.POSTAL_CODE",
		"customer.address.STREET",
		"customer.id",
		"customer.type",
		"lines.price",
		"lines.quantity",
		"lines.sku",
		"orderId",
		"payment.iban",
		"payment.last4",
		"payment.reference",
		"placedAt",
	}, "\n")+"\n", stdout)
}

func TestDescribe_JSON(t *testing.T) {
	stdout, stderr, code := run(t, "describe", "-f", "json", ordersFile, "Line", "Money")
	require.Zero(t, code, stderr)

	var results []Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))

	assert.Equal(t, []Result{
		{Type: "billing.Line", Paths: []string{"price", "quantity", "sku"}},
		{Type: "billing.Money", Leaf: true, Paths: []string{}},
	}, results)
}

func TestDescribe_YAML(t *testing.T) {
	stdout, stderr, code := run(t, "describe", "--format", "yaml", ordersFile, "Card")
	require.Zero(t, code, stderr)

	var results []Result
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &results))

	require.Len(t, results, 1)
	assert.Equal(t, []string{"last4"}, results[0].Paths)
}

func TestDescribe_AllTypesAreGrouped(t *testing.T) {
	stdout, stderr, code := run(t, "describe", ordersFile)
	require.Zero(t, code, stderr)

	assert.Contains(t, stdout, "billing.Order:\n  audit\n")
	assert.Contains(t, stdout, "billing.Money:\n  (leaf type, no field paths)\n")
	assert.Contains(t, stdout, "billing.Address:\n  POSTAL_CODE\n  STREET\n")
}

func TestDescribe_Outline(t *testing.T) {
	stdout, stderr, code := run(t, "describe", "--outline", "--max-depth", "1", ordersFile, "Card")
	require.Zero(t, code, stderr)

	assert.Equal(t, "# billing.Card (record)\n#   last4: string\nlast4\n", stdout)
}

func TestDescribe_Errors(t *testing.T) {
	t.Run("invalid description", func(t *testing.T) {
		_, stderr, code := run(t, "describe", filepath.Join("testdata", "invalid.yaml"))
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "unknown_convention")
		assert.Contains(t, stderr, `did you mean "camelCase"?`)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, stderr, code := run(t, "describe", ordersFile, "Ordr")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, `did you mean "Order"?`)
	})

	t.Run("gap reached by a query", func(t *testing.T) {
		_, stderr, code := run(t, "describe", filepath.Join("testdata", "gap.yaml"), "Shipment")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "undescribed_type")
		assert.Contains(t, stderr, "no structural description")
	})

	t.Run("missing file argument", func(t *testing.T) {
		_, _, code := run(t, "describe")
		assert.Equal(t, 1, code)
	})
}

func TestAnalyze(t *testing.T) {
	stdout, stderr, code := run(t, "analyze", "--pkg", "fieldpaths/store", "-f", "json", "store.OrderItem", "Money")
	require.Zero(t, code, stderr)

	var results []Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))

	require.Len(t, results, 2)
	assert.Equal(t, "store.OrderItem", results[0].Type)
	assert.Equal(t, []string{
		"product.desc",
		"product.id",
		"product.inventory_count",
		"product.name",
		"product.price",
		"product.sku",
		"quantity",
		"unitPrice",
	}, results[0].Paths)
	assert.True(t, results[1].Leaf)
}

func TestAnalyze_Errors(t *testing.T) {
	t.Run("cyclic type", func(t *testing.T) {
		_, stderr, code := run(t, "analyze", "--pkg", "fieldpaths/warehouse", "warehouse.Bin")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "cyclic type graph")
	})

	t.Run("unknown type", func(t *testing.T) {
		_, stderr, code := run(t, "analyze", "--pkg", "fieldpaths/store", "store.Ordr")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "type not found")
	})

	t.Run("no type", func(t *testing.T) {
		_, _, code := run(t, "analyze", "--pkg", "fieldpaths/store")
		assert.Equal(t, 1, code)
	})
}

func TestGen(t *testing.T) {
	stdout, stderr, code := run(t, "gen", "--pkg", "fieldpaths/store", "--no-comments", "store.OrderItem")
	require.Zero(t, code, stderr)

	assert.Contains(t, stdout, "// Code generated by fieldpaths. DO NOT EDIT.")
	assert.Contains(t, stdout, "package store\n")
	assert.Contains(t, stdout, `OrderItemProductInventoryCount = "product.inventory_count"`)
	assert.Contains(t, stdout, "\tOrderItemUnitPrice,\n")
	assert.NotContains(t, stdout, "// OrderItemFieldPaths")
}

func TestGen_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "paths", "order_paths.go")

	_, stderr, code := run(t, "gen", "--pkg", "fieldpaths/store", "--package", "paths", "-o", out, "OrderItem")
	require.Zero(t, code, stderr)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "package paths\n")
	assert.Contains(t, string(content), "// OrderItemFieldPaths lists the leaf field paths of store.OrderItem in lexical order.")
}

func TestGen_Errors(t *testing.T) {
	t.Run("leaf type", func(t *testing.T) {
		_, stderr, code := run(t, "gen", "--pkg", "fieldpaths/store", "store.Money")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "it is a leaf type")
	})

	t.Run("invalid package", func(t *testing.T) {
		_, stderr, code := run(t, "gen", "--pkg", "fieldpaths/store", "--package", "my-paths", "OrderItem")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "invalid package name")
	})
}

func TestConventions(t *testing.T) {
	stdout, stderr, code := run(t, "conventions")
	require.Zero(t, code, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, []string{"CONVENTION", "account_id", "HTTPServer", "r#type"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"camelCase", "accountId", "httpServer", "type"}, strings.Fields(lines[4]))
}

func TestConventions_JSON(t *testing.T) {
	stdout, stderr, code := run(t, "conventions", "snake_case", "SCREAMING-KEBAB-CASE", "--sample", "HTTPServer", "-f", "json")
	require.Zero(t, code, stderr)

	var rows []ConventionRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))

	assert.Equal(t, []ConventionRow{
		{Name: "snake_case", Samples: map[string]string{"HTTPServer": "http_server"}},
		{Name: "SCREAMING-KEBAB-CASE", Samples: map[string]string{"HTTPServer": "HTTP-SERVER"}},
	}, rows)
}

func TestConventions_Unknown(t *testing.T) {
	_, stderr, code := run(t, "conventions", "camelcase")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `did you mean "camelCase"?`)
}

func TestConfig(t *testing.T) {
	t.Setenv("FIELDPATHS_OUTPUT_MAX_DEPTH", "5")

	stdout, stderr, code := run(t, "config", "show", "-f", "json", "--config", filepath.Join("testdata", "config.yaml"))
	require.Zero(t, code, stderr)

	var shown map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &shown))

	assert.Equal(t, "info", shown["log"]["level"])
	assert.Equal(t, "json", shown["output"]["format"], "flags override the file")
	assert.InDelta(t, 5, shown["output"]["max_depth"], 0)

	stdout, stderr, code = run(t, "config", "env")
	require.Zero(t, code, stderr)
	assert.Contains(t, stdout, "FIELDPATHS_OUTPUT_MAX_DEPTH")
	assert.Contains(t, stdout, "output.max_depth")
}

func TestConfig_Invalid(t *testing.T) {
	_, stderr, code := run(t, "conventions", "--format", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "configuration validation failed")
}
