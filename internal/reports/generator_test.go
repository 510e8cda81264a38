package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stockyard-erp/stockyard/internal/orders"
	"github.com/stockyard-erp/stockyard/internal/products"
	"github.com/stockyard-erp/stockyard/internal/sales"
	"github.com/stockyard-erp/stockyard/internal/shared"
)

type fakeProducts struct {
	low []products.Product
}

func (f fakeProducts) LowStock(ctx context.Context, threshold int) ([]products.Product, error) {
	return f.low, nil
}

func (f fakeProducts) Get(ctx context.Context, id string) (products.Product, error) {
	for _, p := range f.low {
		if p.ID == id {
			return p, nil
		}
	}
	return products.Product{}, fmt.Errorf("%w: product %s", shared.ErrNotFound, id)
}

type fakeOrders struct {
	summary []orders.SupplierCost
}

func (f fakeOrders) SummaryBySupplier(ctx context.Context) ([]orders.SupplierCost, error) {
	return f.summary, nil
}

type fakeSales struct {
	summary []sales.ProductSales
	rows    []sales.Sale
}

func (f fakeSales) Summary(ctx context.Context) ([]sales.ProductSales, error) {
	return f.summary, nil
}

func (f fakeSales) ForProduct(ctx context.Context, productID string) ([]sales.Sale, error) {
	return f.rows, nil
}

type fixedClock struct {
	day time.Time
}

func (c fixedClock) Today() time.Time {
	return c.day
}

func newTestGenerator(t *testing.T) (*Generator, string) {
	t.Helper()
	dir := t.TempDir()
	g := NewGenerator(
		fakeProducts{low: []products.Product{{ID: "PROD001", Name: "Widget", SKU: "W1", CostPerUnit: 2.5, AvailableQty: 3, SupplierID: "SUP001"}}},
		fakeOrders{summary: []orders.SupplierCost{{SupplierID: "SUP001", TotalCost: 25}}},
		fakeSales{
			summary: []sales.ProductSales{{ProductID: "PROD001", Name: "Widget", CostPerUnit: 2.5, QuantitySold: 5, TotalRevenue: 12.5}},
			rows:    []sales.Sale{{ID: "SALE001", ProductID: "PROD001", QuantitySold: 5, SaleDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)}},
		},
		fixedClock{day: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		dir,
		nil,
	)
	return g, dir
}

func TestInventoryWorkbookWritesFile(t *testing.T) {
	g, dir := newTestGenerator(t)

	path, err := g.InventoryWorkbook(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "inventory_report_20260901.xlsx"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestInventoryCSVWritesThreeFiles(t *testing.T) {
	g, _ := newTestGenerator(t)

	paths, err := g.InventoryCSV(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, path := range paths {
		_, err := os.Stat(path)
		require.NoError(t, err)
	}
}

func TestProductSalesCSVUnknownProduct(t *testing.T) {
	g, _ := newTestGenerator(t)

	_, err := g.ProductSalesCSV(context.Background(), "PROD404")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderSummaryChartWritesSVG(t *testing.T) {
	g, _ := newTestGenerator(t)

	path, err := g.OrderSummaryChart(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "<svg"))
	require.Contains(t, string(raw), "SUP001")
}

func TestOrderSummaryChartNoOrders(t *testing.T) {
	g := NewGenerator(fakeProducts{}, fakeOrders{}, fakeSales{}, fixedClock{day: time.Now()}, t.TempDir(), nil)

	_, err := g.OrderSummaryChart(context.Background())
	require.ErrorIs(t, err, shared.ErrNotFound)
}
