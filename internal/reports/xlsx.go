package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stockyard-erp/stockyard/internal/orders"
	"github.com/stockyard-erp/stockyard/internal/products"
	"github.com/stockyard-erp/stockyard/internal/sales"
)

// InventoryReport bundles the summaries the inventory report renders.
type InventoryReport struct {
	GeneratedAt  time.Time
	Threshold    int
	LowStock     []products.Product
	OrderSummary []orders.SupplierCost
	SalesSummary []sales.ProductSales
}

const (
	sheetLowStock     = "Low Stock"
	sheetOrderSummary = "Order Summary"
	sheetSalesSummary = "Sales Summary"
)

// BuildInventoryWorkbook renders the full inventory report as an XLSX
// workbook: one sheet per summary plus a column chart of order cost by
// supplier.
func BuildInventoryWorkbook(report InventoryReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeLowStockSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeOrderSummarySheet(f, report.OrderSummary); err != nil {
		return nil, err
	}
	if err := writeSalesSummarySheet(f, report.SalesSummary); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex(sheetLowStock)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func writeLowStockSheet(f *excelize.File, report InventoryReport) error {
	if _, err := f.NewSheet(sheetLowStock); err != nil {
		return err
	}
	header := []interface{}{"Product ID", "Name", "SKU", "Available Qty", "Supplier ID"}
	if err := f.SetSheetRow(sheetLowStock, "A1", &header); err != nil {
		return err
	}
	for i, p := range report.LowStock {
		row := []interface{}{p.ID, p.Name, p.SKU, p.AvailableQty, p.SupplierID}
		if err := f.SetSheetRow(sheetLowStock, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	note := fmt.Sprintf("Low stock threshold: %d, generated %s", report.Threshold, report.GeneratedAt.Format("2006-01-02 15:04:05"))
	return f.SetCellValue(sheetLowStock, fmt.Sprintf("A%d", len(report.LowStock)+3), note)
}

func writeOrderSummarySheet(f *excelize.File, summary []orders.SupplierCost) error {
	if _, err := f.NewSheet(sheetOrderSummary); err != nil {
		return err
	}
	header := []interface{}{"Supplier ID", "Total Cost"}
	if err := f.SetSheetRow(sheetOrderSummary, "A1", &header); err != nil {
		return err
	}
	for i, row := range summary {
		values := []interface{}{row.SupplierID, row.TotalCost}
		if err := f.SetSheetRow(sheetOrderSummary, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}
	if len(summary) == 0 {
		return nil
	}
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheetOrderSummary),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheetOrderSummary, len(summary)+1),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheetOrderSummary, len(summary)+1),
		}},
		Title: []excelize.RichTextRun{{Text: "Total Order Costs by Supplier"}},
	}
	return f.AddChart(sheetOrderSummary, "D2", chart)
}

func writeSalesSummarySheet(f *excelize.File, summary []sales.ProductSales) error {
	if _, err := f.NewSheet(sheetSalesSummary); err != nil {
		return err
	}
	header := []interface{}{"Product ID", "Name", "Total Units Sold", "Total Revenue"}
	if err := f.SetSheetRow(sheetSalesSummary, "A1", &header); err != nil {
		return err
	}
	for i, row := range summary {
		values := []interface{}{row.ProductID, row.Name, row.QuantitySold, row.TotalRevenue}
		if err := f.SetSheetRow(sheetSalesSummary, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}
	return nil
}
