package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stockyard-erp/stockyard/internal/orders"
	"github.com/stockyard-erp/stockyard/internal/products"
	"github.com/stockyard-erp/stockyard/internal/sales"
)

func sampleReport() InventoryReport {
	return InventoryReport{
		GeneratedAt: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		Threshold:   10,
		LowStock: []products.Product{
			{ID: "PROD002", Name: "Gadget", SKU: "G1", AvailableQty: 4, SupplierID: "SUP002"},
		},
		OrderSummary: []orders.SupplierCost{
			{SupplierID: "SUP001", TotalCost: 25},
			{SupplierID: "SUP002", TotalCost: 40},
		},
		SalesSummary: []sales.ProductSales{
			{ProductID: "PROD001", Name: "Widget", CostPerUnit: 2.5, QuantitySold: 5, TotalRevenue: 12.5},
		},
	}
}

func TestBuildInventoryWorkbookSheets(t *testing.T) {
	f, err := BuildInventoryWorkbook(sampleReport())
	require.NoError(t, err)
	defer f.Close()

	require.ElementsMatch(t, []string{sheetLowStock, sheetOrderSummary, sheetSalesSummary}, f.GetSheetList())

	cell, err := f.GetCellValue(sheetLowStock, "A2")
	require.NoError(t, err)
	require.Equal(t, "PROD002", cell)

	cell, err = f.GetCellValue(sheetOrderSummary, "B3")
	require.NoError(t, err)
	require.Equal(t, "40", cell)

	cell, err = f.GetCellValue(sheetSalesSummary, "D2")
	require.NoError(t, err)
	require.Equal(t, "12.5", cell)
}

func TestBuildInventoryWorkbookEmptySummaries(t *testing.T) {
	report := InventoryReport{GeneratedAt: time.Now(), Threshold: 10}
	f, err := BuildInventoryWorkbook(report)
	require.NoError(t, err)
	defer f.Close()
	require.Len(t, f.GetSheetList(), 3)
}
