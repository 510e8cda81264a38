package orders

import "time"

// Conventional delivery statuses. The field itself accepts arbitrary
// non-empty text; only "Delivered" carries a side effect.
const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
)

// Order is one purchase order placed with a supplier.
type Order struct {
	ID             string
	ProductID      string
	SupplierID     string
	Quantity       int
	TotalCost      float64
	OrderDate      time.Time
	DeliveryStatus string
}

// AddInput carries caller-supplied order fields. Quantity/MOQ/stock
// checks are the caller's job via the product manager before Add.
type AddInput struct {
	ProductID  string  `validate:"required"`
	SupplierID string  `validate:"required"`
	Quantity   int     `validate:"gt=0"`
	UnitCost   float64 `validate:"gt=0"`
}

// SupplierCost is one row of the order summary: the sum of total_cost
// over a supplier's orders.
type SupplierCost struct {
	SupplierID string
	TotalCost  float64
}
