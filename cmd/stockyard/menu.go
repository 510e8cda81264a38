package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/stockyard-erp/stockyard/internal/app"
	"github.com/stockyard-erp/stockyard/internal/orders"
	"github.com/stockyard-erp/stockyard/internal/products"
	"github.com/stockyard-erp/stockyard/internal/reports"
	"github.com/stockyard-erp/stockyard/internal/sales"
	"github.com/stockyard-erp/stockyard/internal/suppliers"
)

type menu struct {
	cfg       *app.Config
	suppliers *suppliers.Service
	products  *products.Service
	orders    *orders.Service
	sales     *sales.Service
	reports   *reports.Generator

	in  *bufio.Scanner
	out io.Writer
}

func newMenu(cfg *app.Config, s *suppliers.Service, p *products.Service, o *orders.Service, sl *sales.Service, g *reports.Generator) *menu {
	return &menu{cfg: cfg, suppliers: s, products: p, orders: o, sales: sl, reports: g}
}

const menuText = `
====== Stockyard ======
 1. Add supplier          12. Add order
 2. View suppliers        13. View orders
 3. Update supplier       14. Update order status
 4. Delete supplier       15. Delete order
 5. Search suppliers      16. Search orders
 6. Add product           17. Order summary by supplier
 7. View products         18. Inventory report (XLSX)
 8. Update product        19. Order summary chart (SVG)
 9. Delete product        20. Record sale
10. Search products       21. Inventory summaries (CSV)
11. Low stock products    22. Product sales report (CSV)
 0. Exit`

// Run drives the interactive menu until the user exits or input ends.
func (m *menu) Run(ctx context.Context, in io.Reader, out io.Writer) {
	m.in = bufio.NewScanner(in)
	m.out = out
	for {
		fmt.Fprintln(m.out, menuText)
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return
		}
		if choice == "0" {
			fmt.Fprintln(m.out, "Bye.")
			return
		}
		m.dispatch(ctx, choice)
	}
}

func (m *menu) dispatch(ctx context.Context, choice string) {
	actions := map[string]func(context.Context){
		"1":  m.addSupplier,
		"2":  m.viewSuppliers,
		"3":  m.updateSupplier,
		"4":  m.deleteSupplier,
		"5":  m.searchSuppliers,
		"6":  m.addProduct,
		"7":  m.viewProducts,
		"8":  m.updateProduct,
		"9":  m.deleteProduct,
		"10": m.searchProducts,
		"11": m.lowStock,
		"12": m.addOrder,
		"13": m.viewOrders,
		"14": m.updateOrderStatus,
		"15": m.deleteOrder,
		"16": m.searchOrders,
		"17": m.orderSummary,
		"18": m.inventoryWorkbook,
		"19": m.orderChart,
		"20": m.recordSale,
		"21": m.inventoryCSV,
		"22": m.productSalesReport,
	}
	action, ok := actions[choice]
	if !ok {
		fmt.Fprintln(m.out, "Invalid choice, try again.")
		return
	}
	action(ctx)
}

func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) promptInt(label string) (int, bool) {
	raw, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(m.out, "Please enter a whole number.")
		return 0, false
	}
	return n, true
}

func (m *menu) promptFloat(label string) (float64, bool) {
	raw, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Fprintln(m.out, "Please enter a number.")
		return 0, false
	}
	return f, true
}

func (m *menu) fail(err error) {
	fmt.Fprintf(m.out, "Error: %v\n", err)
}

// ---- suppliers ----

func (m *menu) supplierInput() (suppliers.AddInput, bool) {
	name, ok := m.prompt("Supplier name: ")
	if !ok {
		return suppliers.AddInput{}, false
	}
	location, ok := m.prompt("Location: ")
	if !ok {
		return suppliers.AddInput{}, false
	}
	contact, ok := m.prompt("Contact (email or phone): ")
	if !ok {
		return suppliers.AddInput{}, false
	}
	return suppliers.AddInput{Name: name, Location: location, Contact: contact}, true
}

func (m *menu) addSupplier(ctx context.Context) {
	input, ok := m.supplierInput()
	if !ok {
		return
	}
	supplier, err := m.suppliers.Add(ctx, input)
	if err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Supplier %s added.\n", supplier.ID)
}

func (m *menu) viewSuppliers(ctx context.Context) {
	list, err := m.suppliers.List(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.printSuppliers(list)
}

func (m *menu) updateSupplier(ctx context.Context) {
	id, ok := m.prompt("Supplier ID (e.g. SUP001): ")
	if !ok {
		return
	}
	input, ok := m.supplierInput()
	if !ok {
		return
	}
	if err := m.suppliers.Update(ctx, id, input); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Supplier %s updated.\n", id)
}

func (m *menu) deleteSupplier(ctx context.Context) {
	id, ok := m.prompt("Supplier ID to delete: ")
	if !ok {
		return
	}
	if err := m.suppliers.Delete(ctx, id); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Supplier %s deleted.\n", id)
}

func (m *menu) searchSuppliers(ctx context.Context) {
	term, ok := m.prompt("Search name or location: ")
	if !ok || term == "" {
		return
	}
	list, err := m.suppliers.Search(ctx, term)
	if err != nil {
		m.fail(err)
		return
	}
	m.printSuppliers(list)
}

func (m *menu) printSuppliers(list []suppliers.Supplier) {
	if len(list) == 0 {
		fmt.Fprintln(m.out, "No suppliers found.")
		return
	}
	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tLocation\tContact")
	for _, s := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Location, s.Contact)
	}
	w.Flush()
}

// ---- products ----

func (m *menu) productInput() (products.AddInput, bool) {
	name, ok := m.prompt("Product name: ")
	if !ok {
		return products.AddInput{}, false
	}
	sku, ok := m.prompt("SKU: ")
	if !ok {
		return products.AddInput{}, false
	}
	cost, ok := m.promptFloat("Cost per unit: ")
	if !ok {
		return products.AddInput{}, false
	}
	moq, ok := m.promptInt("Minimum order quantity: ")
	if !ok {
		return products.AddInput{}, false
	}
	qty, ok := m.promptInt("Available quantity: ")
	if !ok {
		return products.AddInput{}, false
	}
	supplierID, ok := m.prompt("Supplier ID: ")
	if !ok {
		return products.AddInput{}, false
	}
	return products.AddInput{Name: name, SKU: sku, CostPerUnit: cost, MOQ: moq, AvailableQty: qty, SupplierID: supplierID}, true
}

func (m *menu) addProduct(ctx context.Context) {
	input, ok := m.productInput()
	if !ok {
		return
	}
	product, err := m.products.Add(ctx, input)
	if err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Product %s added.\n", product.ID)
}

func (m *menu) viewProducts(ctx context.Context) {
	list, err := m.products.List(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.printProducts(list)
}

func (m *menu) updateProduct(ctx context.Context) {
	id, ok := m.prompt("Product ID (e.g. PROD001): ")
	if !ok {
		return
	}
	input, ok := m.productInput()
	if !ok {
		return
	}
	if err := m.products.Update(ctx, id, input); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Product %s updated.\n", id)
}

func (m *menu) deleteProduct(ctx context.Context) {
	id, ok := m.prompt("Product ID to delete: ")
	if !ok {
		return
	}
	if err := m.products.Delete(ctx, id); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Product %s deleted.\n", id)
}

func (m *menu) searchProducts(ctx context.Context) {
	term, ok := m.prompt("Search name or SKU: ")
	if !ok || term == "" {
		return
	}
	list, err := m.products.Search(ctx, term)
	if err != nil {
		m.fail(err)
		return
	}
	m.printProducts(list)
}

func (m *menu) lowStock(ctx context.Context) {
	raw, ok := m.prompt(fmt.Sprintf("Threshold (default %d): ", m.cfg.LowStockThreshold))
	if !ok {
		return
	}
	threshold := m.cfg.LowStockThreshold
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			fmt.Fprintf(m.out, "Invalid threshold, using default (%d).\n", threshold)
		} else {
			threshold = n
		}
	}
	list, err := m.products.LowStock(ctx, threshold)
	if err != nil {
		m.fail(err)
		return
	}
	m.printProducts(list)
}

func (m *menu) printProducts(list []products.Product) {
	if len(list) == 0 {
		fmt.Fprintln(m.out, "No products found.")
		return
	}
	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tSKU\tCost/Unit\tMOQ\tAvailable\tSupplier")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%d\t%s\n", p.ID, p.Name, p.SKU, p.CostPerUnit, p.MOQ, p.AvailableQty, p.SupplierID)
	}
	w.Flush()
}

// ---- orders ----

func (m *menu) addOrder(ctx context.Context) {
	productID, ok := m.prompt("Product ID: ")
	if !ok {
		return
	}
	supplierID, ok := m.prompt("Supplier ID: ")
	if !ok {
		return
	}
	qty, ok := m.promptInt("Quantity: ")
	if !ok {
		return
	}
	unitCost, ok := m.promptFloat("Cost per unit: ")
	if !ok {
		return
	}
	// MOQ and stock limits are the product manager's call.
	if err := m.products.ValidateOrderQuantity(ctx, productID, qty); err != nil {
		m.fail(err)
		return
	}
	order, err := m.orders.Add(ctx, orders.AddInput{ProductID: productID, SupplierID: supplierID, Quantity: qty, UnitCost: unitCost})
	if err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Order %s added, total cost %.2f.\n", order.ID, order.TotalCost)
}

func (m *menu) viewOrders(ctx context.Context) {
	list, err := m.orders.List(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.printOrders(list)
}

func (m *menu) updateOrderStatus(ctx context.Context) {
	id, ok := m.prompt("Order ID (e.g. ORD001): ")
	if !ok {
		return
	}
	status, ok := m.prompt("New status (Pending/Shipped/Delivered/...): ")
	if !ok {
		return
	}
	if err := m.orders.UpdateStatus(ctx, id, status); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Order %s status updated to %s.\n", id, status)
}

func (m *menu) deleteOrder(ctx context.Context) {
	id, ok := m.prompt("Order ID to delete: ")
	if !ok {
		return
	}
	if err := m.orders.Delete(ctx, id); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Order %s deleted.\n", id)
}

func (m *menu) searchOrders(ctx context.Context) {
	term, ok := m.prompt("Search status or date: ")
	if !ok || term == "" {
		return
	}
	list, err := m.orders.Search(ctx, term)
	if err != nil {
		m.fail(err)
		return
	}
	m.printOrders(list)
}

func (m *menu) orderSummary(ctx context.Context) {
	summary, err := m.orders.SummaryBySupplier(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	if len(summary) == 0 {
		fmt.Fprintln(m.out, "No orders found.")
		return
	}
	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Supplier\tTotal Cost")
	for _, row := range summary {
		fmt.Fprintf(w, "%s\t%.2f\n", row.SupplierID, row.TotalCost)
	}
	w.Flush()
}

func (m *menu) printOrders(list []orders.Order) {
	if len(list) == 0 {
		fmt.Fprintln(m.out, "No orders found.")
		return
	}
	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tProduct\tSupplier\tQty\tTotal\tDate\tStatus")
	for _, o := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%s\t%s\n", o.ID, o.ProductID, o.SupplierID, o.Quantity, o.TotalCost, o.OrderDate.Format(orders.DateLayout), o.DeliveryStatus)
	}
	w.Flush()
}

// ---- sales & reports ----

func (m *menu) recordSale(ctx context.Context) {
	productID, ok := m.prompt("Product ID: ")
	if !ok {
		return
	}
	qty, ok := m.promptInt("Quantity sold: ")
	if !ok {
		return
	}
	sale, err := m.sales.Record(ctx, productID, qty)
	if err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Sale %s recorded.\n", sale.ID)
}

func (m *menu) inventoryWorkbook(ctx context.Context) {
	path, err := m.reports.InventoryWorkbook(ctx, m.cfg.LowStockThreshold)
	if err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Report written to %s.\n", path)
}

func (m *menu) inventoryCSV(ctx context.Context) {
	paths, err := m.reports.InventoryCSV(ctx, m.cfg.LowStockThreshold)
	if err != nil {
		m.fail(err)
		return
	}
	for _, path := range paths {
		fmt.Fprintf(m.out, "Report written to %s.\n", path)
	}
}

func (m *menu) productSalesReport(ctx context.Context) {
	productID, ok := m.prompt("Product ID: ")
	if !ok {
		return
	}
	path, err := m.reports.ProductSalesCSV(ctx, productID)
	if err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Report written to %s.\n", path)
}

func (m *menu) orderChart(ctx context.Context) {
	path, err := m.reports.OrderSummaryChart(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Chart written to %s.\n", path)
}
