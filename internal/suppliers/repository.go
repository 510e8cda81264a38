package suppliers

import (
	"context"

	"github.com/stockyard-erp/stockyard/internal/platform/tabular"
)

// TableSuppliers is the persistent supplier table. Column order is part
// of the file contract and must not change.
var TableSuppliers = tabular.Table{
	File:   "suppliers.csv",
	Header: []string{"supplier_id", "name", "location", "contact_info"},
}

const counterKey = "supplier"

// Repository persists suppliers in the tabular store.
type Repository struct {
	store    *tabular.Store
	counters *tabular.Counters
}

// NewRepository constructs Repository.
func NewRepository(store *tabular.Store) *Repository {
	return &Repository{store: store, counters: tabular.NewCounters(store)}
}

func rowToSupplier(row []string) Supplier {
	return Supplier{ID: row[0], Name: row[1], Location: row[2], Contact: row[3]}
}

func supplierToRow(s Supplier) []string {
	return []string{s.ID, s.Name, s.Location, s.Contact}
}

// List returns all suppliers in storage order.
func (r *Repository) List(ctx context.Context) ([]Supplier, error) {
	rows, err := r.store.ReadAll(TableSuppliers)
	if err != nil {
		return nil, err
	}
	out := make([]Supplier, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToSupplier(row))
	}
	return out, nil
}

// Append adds one supplier row and advances the ID counter.
func (r *Repository) Append(ctx context.Context, s Supplier) error {
	if err := r.store.Append(TableSuppliers, supplierToRow(s)); err != nil {
		return err
	}
	return r.counters.Set(counterKey, s.ID)
}

// ReplaceAll rewrites the whole table with the given suppliers.
func (r *Repository) ReplaceAll(ctx context.Context, list []Supplier) error {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, supplierToRow(s))
	}
	return r.store.WriteAll(TableSuppliers, rows)
}

// LastID returns the most recently allocated supplier ID, or "" when
// none was allocated yet. The counter outlives deleted rows, so a
// removed ID is never handed out again. Tables predating the counter
// file fall back to the last surviving row.
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
