package orders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/stockyard-erp/stockyard/internal/platform/tabular"
	"github.com/stockyard-erp/stockyard/internal/shared"
)

// DateLayout is the on-disk order date format.
const DateLayout = "2006-01-02"

// TableOrders is the persistent order table.
var TableOrders = tabular.Table{
	File:   "orders.csv",
	Header: []string{"order_id", "product_id", "supplier_id", "quantity", "total_cost", "order_date", "delivery_status"},
}

const counterKey = "order"

// Repository persists orders in the tabular store.
type Repository struct {
	store    *tabular.Store
	counters *tabular.Counters
}

// NewRepository constructs Repository.
func NewRepository(store *tabular.Store) *Repository {
	return &Repository{store: store, counters: tabular.NewCounters(store)}
}

func rowToOrder(row []string) (Order, error) {
	qty, err := strconv.Atoi(row[3])
	if err != nil {
		return Order{}, fmt.Errorf("%w: order %s quantity: %v", shared.ErrStorage, row[0], err)
	}
	total, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return Order{}, fmt.Errorf("%w: order %s total_cost: %v", shared.ErrStorage, row[0], err)
	}
	date, err := time.Parse(DateLayout, row[5])
	if err != nil {
		return Order{}, fmt.Errorf("%w: order %s order_date: %v", shared.ErrStorage, row[0], err)
	}
	return Order{
		ID:             row[0],
		ProductID:      row[1],
		SupplierID:     row[2],
		Quantity:       qty,
		TotalCost:      total,
		OrderDate:      date,
		DeliveryStatus: row[6],
	}, nil
}

func orderToRow(o Order) []string {
	return []string{
		o.ID,
		o.ProductID,
		o.SupplierID,
		strconv.Itoa(o.Quantity),
		strconv.FormatFloat(o.TotalCost, 'f', 2, 64),
		o.OrderDate.Format(DateLayout),
		o.DeliveryStatus,
	}
}

// List returns all orders in storage order.
func (r *Repository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.store.ReadAll(TableOrders)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(rows))
	for _, row := range rows {
		order, err := rowToOrder(row)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, nil
}

// Append adds one order row and advances the ID counter.
func (r *Repository) Append(ctx context.Context, o Order) error {
	if err := r.store.Append(TableOrders, orderToRow(o)); err != nil {
		return err
	}
	return r.counters.Set(counterKey, o.ID)
}

// ReplaceAll rewrites the whole table.
func (r *Repository) ReplaceAll(ctx context.Context, list []Order) error {
	rows := make([][]string, 0, len(list))
	for _, o := range list {
		rows = append(rows, orderToRow(o))
	}
	return r.store.WriteAll(TableOrders, rows)
}

// LastID returns the most recently allocated order ID, or "". The
// counter outlives deleted rows; tables predating the counter file
// fall back to the last surviving row.
func (r *Repository) LastID(ctx context.Context) (string, error) {
	last, err := r.counters.Last(counterKey)
	if err != nil || last != "" {
		return last, err
	}
	list, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", nil
	}
	return list[len(list)-1].ID, nil
}

// ExistsForSupplier reports whether any order references supplierID.
// Used as the supplier delete guard.
func (r *Repository) ExistsForSupplier(ctx context.Context, supplierID string) (bool, error) {
	list, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, o := range list {
		if o.SupplierID == supplierID {
			return true, nil
		}
	}
	return false, nil
}

// ExistsForProduct reports whether any order references productID.
// Used as the product delete guard.
func (r *Repository) ExistsForProduct(ctx context.Context, productID string) (bool, error) {
	list, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, o := range list {
		if o.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
