package products

// Product is one purchasable item tied to a supplier.
type Product struct {
	ID           string
	Name         string
	SKU          string
	CostPerUnit  float64
	MOQ          int
	AvailableQty int
	SupplierID   string
}

// AddInput carries caller-supplied product fields. SupplierID must name
// an existing supplier and SKU must be unique among live products.
type AddInput struct {
	Name         string  `validate:"required"`
	SKU          string  `validate:"required"`
	CostPerUnit  float64 `validate:"gt=0"`
	MOQ          int     `validate:"gt=0"`
	AvailableQty int     `validate:"gt=0"`
	SupplierID   string  `validate:"required"`
}
