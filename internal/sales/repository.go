package sales

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/stockyard-erp/stockyard/internal/platform/tabular"
	"github.com/stockyard-erp/stockyard/internal/shared"
)

// DateLayout is the on-disk sale date format.
const DateLayout = "2006-01-02"

// TableSales is the persistent sale table.
var TableSales = tabular.Table{
	File:   "sales.csv",
	Header: []string{"sale_id", "product_id", "quantity_sold", "sale_date"},
}

const counterKey = "sale"

// Repository persists sales in the tabular store.
type Repository struct {
	store    *tabular.Store
	counters *tabular.Counters
}

// NewRepository constructs Repository.
func NewRepository(store *tabular.Store) *Repository {
	return &Repository{store: store, counters: tabular.NewCounters(store)}
}

func rowToSale(row []string) (Sale, error) {
	qty, err := strconv.Atoi(row[2])
	if err != nil {
		return Sale{}, fmt.Errorf("%w: sale %s quantity_sold: %v", shared.ErrStorage, row[0], err)
	}
	date, err := time.Parse(DateLayout, row[3])
	if err != nil {
		return Sale{}, fmt.Errorf("%w: sale %s sale_date: %v", shared.ErrStorage, row[0], err)
	}
	return Sale{ID: row[0], ProductID: row[1], QuantitySold: qty, SaleDate: date}, nil
}

func saleToRow(s Sale) []string {
	return []string{s.ID, s.ProductID, strconv.Itoa(s.QuantitySold), s.SaleDate.Format(DateLayout)}
}

// List returns all sales in storage order.
func (r *Repository) List(ctx context.Context) ([]Sale, error) {
	rows, err := r.store.ReadAll(TableSales)
	if err != nil {
		return nil, err
	}
	out := make([]Sale, 0, len(rows))
	for _, row := range rows {
		sale, err := rowToSale(row)
		if err != nil {
			return nil, err
		}
		out = append(out, sale)
	}
	return out, nil
}

// Append adds one sale row and advances the ID counter.
func (r *Repository) Append(ctx context.Context, s Sale) error {
	if err := r.store.Append(TableSales, saleToRow(s)); err != nil {
		return err
	}
	return r.counters.Set(counterKey, s.ID)
}

// LastID returns the most recently allocated sale ID, or "". The
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

// ExistsForProduct reports whether any sale references productID.
// Used as the product delete guard.
func (r *Repository) ExistsForProduct(ctx context.Context, productID string) (bool, error) {
	list, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range list {
		if s.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
