package products

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stockyard-erp/stockyard/internal/platform/tabular"
	"github.com/stockyard-erp/stockyard/internal/shared"
)

// TableProducts is the persistent product table.
var TableProducts = tabular.Table{
	File:   "products.csv",
	Header: []string{"product_id", "name", "sku", "cost_per_unit", "moq", "available_qty", "supplier_id"},
}

const counterKey = "product"

// Repository persists products in the tabular store.
type Repository struct {
	store    *tabular.Store
	counters *tabular.Counters
}

// NewRepository constructs Repository.
func NewRepository(store *tabular.Store) *Repository {
	return &Repository{store: store, counters: tabular.NewCounters(store)}
}

func rowToProduct(row []string) (Product, error) {
	cost, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return Product{}, fmt.Errorf("%w: product %s cost_per_unit: %v", shared.ErrStorage, row[0], err)
	}
	moq, err := strconv.Atoi(row[4])
	if err != nil {
		return Product{}, fmt.Errorf("%w: product %s moq: %v", shared.ErrStorage, row[0], err)
	}
	qty, err := strconv.Atoi(row[5])
	if err != nil {
		return Product{}, fmt.Errorf("%w: product %s available_qty: %v", shared.ErrStorage, row[0], err)
	}
	return Product{
		ID:           row[0],
		Name:         row[1],
		SKU:          row[2],
		CostPerUnit:  cost,
		MOQ:          moq,
		AvailableQty: qty,
		SupplierID:   row[6],
	}, nil
}

func productToRow(p Product) []string {
	return []string{
		p.ID,
		p.Name,
		p.SKU,
		strconv.FormatFloat(p.CostPerUnit, 'f', 2, 64),
		strconv.Itoa(p.MOQ),
		strconv.Itoa(p.AvailableQty),
		p.SupplierID,
	}
}

// List returns all products in storage order.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.store.ReadAll(TableProducts)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		product, err := rowToProduct(row)
		if err != nil {
			return nil, err
		}
		out = append(out, product)
	}
	return out, nil
}

// Append adds one product row and advances the ID counter.
func (r *Repository) Append(ctx context.Context, p Product) error {
	if err := r.store.Append(TableProducts, productToRow(p)); err != nil {
		return err
	}
	return r.counters.Set(counterKey, p.ID)
}

// ReplaceAll rewrites the whole table.
func (r *Repository) ReplaceAll(ctx context.Context, list []Product) error {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, productToRow(p))
	}
	return r.store.WriteAll(TableProducts, rows)
}

// LastID returns the most recently allocated product ID, or "". The
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

// ExistsForSupplier reports whether any product references supplierID.
// Used as the supplier delete guard.
func (r *Repository) ExistsForSupplier(ctx context.Context, supplierID string) (bool, error) {
	list, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range list {
		if p.SupplierID == supplierID {
			return true, nil
		}
	}
	return false, nil
}
