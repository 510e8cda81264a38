package sales

import "time"

// Sale is one recorded sale of a product.
type Sale struct {
	ID           string
	ProductID    string
	QuantitySold int
	SaleDate     time.Time
}

// ProductSales is one row of the sales summary: units sold and revenue
// for a product still present in the product table.
type ProductSales struct {
	ProductID    string
	Name         string
	CostPerUnit  float64
	QuantitySold int
	TotalRevenue float64
}
