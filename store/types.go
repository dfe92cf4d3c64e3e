// Package store holds the order model used to exercise the describers.
package store

import (
	"strconv"
	"time"
)

// Money is an amount in minor currency units. It marshals to text, so it is a leaf.
type Money int64

// MarshalText implements encoding.TextMarshaler.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(m), 10)), nil
}

// Audit carries bookkeeping timestamps; embedding it promotes its fields.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Product represents an individual item available for sale.
type Product struct {
	_ struct{} `fields:"rename_all=snake_case"`

	ID          int64
	SKU         string
	Name        string
	Description string `fields:"desc"`
	Price       Money
	Inventory   int `fields:"inventory_count"`
}

// Address is a postal address.
type Address struct {
	Street     string
	City       string
	PostalCode string
}

// Customer represents the user placing orders.
type Customer struct {
	_ struct{} `fields:"rename_all=camelCase"`

	Audit

	ID           int64
	Email        string
	FullName     string
	Address      *Address
	PasswordHash string `fields:"-"`
	Preferences  map[string]string
}

// Order represents a transaction made by a customer.
type Order struct {
	_ struct{} `fields:"rename_all=camelCase"`

	ID       int64
	Customer Customer
	Status   OrderStatus
	Total    Money
	Items    []OrderItem
	Payment  Payment
	Shipping *Address `fields:",opaque"`
	Notes    []string
	Tags     map[string]struct{}
	Hooks    chan struct{} `fields:"-"`
}

// OrderItem represents a specific product line within an order.
type OrderItem struct {
	_ struct{} `fields:"rename_all=camelCase"`

	Product   Product
	Quantity  int
	UnitPrice Money
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Payment is how an order was paid. Only the types in this package implement it.
type Payment interface {
	isPayment()
}

// Card is a card payment.
type Card struct {
	_ struct{} `fields:"rename_all=camelCase"`

	Last4  string
	Expiry string
}

// BankTransfer is a payment by wire.
type BankTransfer struct {
	_ struct{} `fields:"rename_all=camelCase"`

	IBAN      string `fields:"iban"`
	Reference string
}

// Voucher is a prepaid voucher.
type Voucher struct {
	Code string `fields:"code"`
}

func (Card) isPayment()          {}
func (*BankTransfer) isPayment() {}
func (Voucher) isPayment()       {}

// Barcode is a scanned product code.
type Barcode string

// Listing is a product as shown in the catalog. The embedded Barcode is a
// single field named after its type; the opaque Audit is kept whole instead
// of promoting its fields.
type Listing struct {
	Barcode
	Audit `fields:",opaque"`

	Title string
}
