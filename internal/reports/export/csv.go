package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/stockyard-erp/stockyard/internal/orders"
	"github.com/stockyard-erp/stockyard/internal/products"
	"github.com/stockyard-erp/stockyard/internal/sales"
)

var money = message.NewPrinter(language.English)

func formatMoney(v float64) string {
	return money.Sprintf("%.2f", v)
}

// WriteLowStockCSV serialises the low stock list to CSV.
func WriteLowStockCSV(w io.Writer, list []products.Product, threshold int) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Product ID", "Name", "SKU", "Available Qty", "Supplier ID"}); err != nil {
		return err
	}
	for _, p := range list {
		if err := writer.Write([]string{p.ID, p.Name, p.SKU, strconv.Itoa(p.AvailableQty), p.SupplierID}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteOrderSummaryCSV emits the per-supplier order cost totals as CSV.
func WriteOrderSummaryCSV(w io.Writer, summary []orders.SupplierCost) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Supplier ID", "Total Cost"}); err != nil {
		return err
	}
	for _, row := range summary {
		if err := writer.Write([]string{row.SupplierID, formatMoney(row.TotalCost)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSalesSummaryCSV emits the per-product sales totals as CSV.
func WriteSalesSummaryCSV(w io.Writer, summary []sales.ProductSales) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Product ID", "Name", "Total Units Sold", "Total Revenue"}); err != nil {
		return err
	}
	for _, row := range summary {
		if err := writer.Write([]string{row.ProductID, row.Name, strconv.Itoa(row.QuantitySold), formatMoney(row.TotalRevenue)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteProductSalesCSV prints every sale of one product with its
// revenue at the product's current unit cost.
func WriteProductSalesCSV(w io.Writer, product products.Product, list []sales.Sale) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Sale ID", "Quantity Sold", "Sale Date", "Cost/Unit", "Total Revenue"}); err != nil {
		return err
	}
	for _, sale := range list {
		revenue := float64(sale.QuantitySold) * product.CostPerUnit
		if err := writer.Write([]string{
			sale.ID,
			strconv.Itoa(sale.QuantitySold),
			sale.SaleDate.Format(sales.DateLayout),
			formatMoney(product.CostPerUnit),
			formatMoney(revenue),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
