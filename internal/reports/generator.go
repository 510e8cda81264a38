package reports

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stockyard-erp/stockyard/internal/orders"
	"github.com/stockyard-erp/stockyard/internal/products"
	"github.com/stockyard-erp/stockyard/internal/reports/export"
	"github.com/stockyard-erp/stockyard/internal/reports/svg"
	"github.com/stockyard-erp/stockyard/internal/sales"
	"github.com/stockyard-erp/stockyard/internal/shared"
)

// ProductReader is the product manager slice used by reports.
type ProductReader interface {
	LowStock(ctx context.Context, threshold int) ([]products.Product, error)
	Get(ctx context.Context, id string) (products.Product, error)
}

// OrderReader is the order manager slice used by reports.
type OrderReader interface {
	SummaryBySupplier(ctx context.Context) ([]orders.SupplierCost, error)
}

// SalesReader is the sales manager slice used by reports.
type SalesReader interface {
	Summary(ctx context.Context) ([]sales.ProductSales, error)
	ForProduct(ctx context.Context, productID string) ([]sales.Sale, error)
}

// Generator writes report and chart files under an output directory.
// It only reads from the managers; it never mutates any table.
type Generator struct {
	products ProductReader
	orders   OrderReader
	sales    SalesReader
	clock    shared.Clock
	dir      string
	logger   *slog.Logger
}

// NewGenerator builds Generator writing into dir.
func NewGenerator(products ProductReader, orders OrderReader, sales SalesReader, clock shared.Clock, dir string, logger *slog.Logger) *Generator {
	return &Generator{products: products, orders: orders, sales: sales, clock: clock, dir: dir, logger: logger}
}

func (g *Generator) collect(ctx context.Context, threshold int) (InventoryReport, error) {
	lowStock, err := g.products.LowStock(ctx, threshold)
	if err != nil {
		return InventoryReport{}, err
	}
	orderSummary, err := g.orders.SummaryBySupplier(ctx)
	if err != nil {
		return InventoryReport{}, err
	}
	salesSummary, err := g.sales.Summary(ctx)
	if err != nil {
		return InventoryReport{}, err
	}
	return InventoryReport{
		GeneratedAt:  g.clock.Today(),
		Threshold:    threshold,
		LowStock:     lowStock,
		OrderSummary: orderSummary,
		SalesSummary: salesSummary,
	}, nil
}

func (g *Generator) outPath(name string) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create report dir: %v", shared.ErrStorage, err)
	}
	return filepath.Join(g.dir, name), nil
}

func (g *Generator) stamp() string {
	return g.clock.Today().Format("20060102")
}

// InventoryWorkbook writes the full inventory report workbook and
// returns its path.
func (g *Generator) InventoryWorkbook(ctx context.Context, threshold int) (string, error) {
	report, err := g.collect(ctx, threshold)
	if err != nil {
		return "", err
	}
	workbook, err := BuildInventoryWorkbook(report)
	if err != nil {
		return "", err
	}
	path, err := g.outPath(fmt.Sprintf("inventory_report_%s.xlsx", g.stamp()))
	if err != nil {
		return "", err
	}
	if err := workbook.SaveAs(path); err != nil {
		return "", fmt.Errorf("%w: save workbook: %v", shared.ErrStorage, err)
	}
	if g.logger != nil {
		g.logger.Info("inventory workbook written", slog.String("path", path))
	}
	return path, nil
}

// InventoryCSV writes the three inventory summaries as separate CSV
// files and returns their paths.
func (g *Generator) InventoryCSV(ctx context.Context, threshold int) ([]string, error) {
	report, err := g.collect(ctx, threshold)
	if err != nil {
		return nil, err
	}
	stamp := g.stamp()
	var paths []string

	lowStockPath, err := g.writeCSV(fmt.Sprintf("low_stock_%s.csv", stamp), func(f *os.File) error {
		return export.WriteLowStockCSV(f, report.LowStock, report.Threshold)
	})
	if err != nil {
		return nil, err
	}
	paths = append(paths, lowStockPath)

	orderPath, err := g.writeCSV(fmt.Sprintf("order_summary_%s.csv", stamp), func(f *os.File) error {
		return export.WriteOrderSummaryCSV(f, report.OrderSummary)
	})
	if err != nil {
		return nil, err
	}
	paths = append(paths, orderPath)

	salesPath, err := g.writeCSV(fmt.Sprintf("sales_summary_%s.csv", stamp), func(f *os.File) error {
		return export.WriteSalesSummaryCSV(f, report.SalesSummary)
	})
	if err != nil {
		return nil, err
	}
	paths = append(paths, salesPath)
	return paths, nil
}

// ProductSalesCSV writes every sale of one product, with revenue, as a
// CSV file and returns its path.
func (g *Generator) ProductSalesCSV(ctx context.Context, productID string) (string, error) {
	product, err := g.products.Get(ctx, productID)
	if err != nil {
		return "", err
	}
	list, err := g.sales.ForProduct(ctx, productID)
	if err != nil {
		return "", err
	}
	return g.writeCSV(fmt.Sprintf("product_sales_%s_%s.csv", productID, g.stamp()), func(f *os.File) error {
		return export.WriteProductSalesCSV(f, product, list)
	})
}

// OrderSummaryChart renders the order-cost-by-supplier bar chart as an
// SVG file and returns its path.
func (g *Generator) OrderSummaryChart(ctx context.Context) (string, error) {
	summary, err := g.orders.SummaryBySupplier(ctx)
	if err != nil {
		return "", err
	}
	if len(summary) == 0 {
		return "", fmt.Errorf("%w: no orders to chart", shared.ErrNotFound)
	}
	series := make([]float64, 0, len(summary))
	labels := make([]string, 0, len(summary))
	for _, row := range summary {
		series = append(series, row.TotalCost)
		labels = append(labels, row.SupplierID)
	}
	chart, err := svg.Bars(svg.DefaultWidth, svg.DefaultHeight, series, labels, svg.BarOpts{
		Title:       "Total Order Costs by Supplier",
		Description: "Sum of order total cost per supplier",
		SeriesLabel: "Total Cost",
	})
	if err != nil {
		return "", err
	}
	path, err := g.outPath(fmt.Sprintf("order_summary_%s.svg", g.stamp()))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(chart), 0o644); err != nil {
		return "", fmt.Errorf("%w: write chart: %v", shared.ErrStorage, err)
	}
	return path, nil
}

func (g *Generator) writeCSV(name string, write func(*os.File) error) (string, error) {
	path, err := g.outPath(name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", shared.ErrStorage, name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: write %s: %v", shared.ErrStorage, name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", shared.ErrStorage, name, err)
	}
	return path, nil
}
