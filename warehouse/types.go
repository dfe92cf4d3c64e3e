// Package warehouse holds a relational model whose associations point back at
// each other; fields tags cut the loops so the types can be flattened.
package warehouse

import (
	"time"
)

// Address represents a physical or billing/shipping address.
type Address struct {
	_ struct{} `fields:"rename_all=snake_case"`

	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Customer represents a warehouse customer.
type Customer struct {
	_ struct{} `fields:"rename_all=snake_case"`

	ID        uint
	FirstName string
	LastName  string
	Email     string
	Addresses []Address

	// back-reference, kept as a single leaf
	Orders []Order `fields:",opaque"`
}

// Product represents a sellable item in the warehouse.
type Product struct {
	_ struct{} `fields:"rename_all=snake_case"`

	ID     uint
	SKU    string
	Weight float64

	OrderItems []OrderItem `fields:"-"`
}

// Order represents a customer's purchase.
type Order struct {
	_ struct{} `fields:"rename_all=snake_case"`

	ID          uint
	OrderNumber string

	ShippingAddress Address `fields:"ship_to"`
	BillingAddress  Address `fields:"bill_to"`

	Customer Customer
	Items    []OrderItem

	PlacedAt  *time.Time
	CreatedAt time.Time
}

// OrderItem is a line item within an order.
type OrderItem struct {
	_ struct{} `fields:"rename_all=snake_case"`

	Quantity  int
	UnitPrice int64

	Order   *Order `fields:"-"`
	Product Product
}

// Bin is a storage location. Bins nest without limit, so Bin cannot be flattened.
type Bin struct {
	Code   string
	Parent *Bin
}
