package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stockyard-erp/stockyard/internal/products"
	"github.com/stockyard-erp/stockyard/internal/shared"
)

type memorySaleRepo struct {
	rows   []Sale
	lastID string
}

func (r *memorySaleRepo) List(ctx context.Context) ([]Sale, error) {
	return append([]Sale(nil), r.rows...), nil
}

func (r *memorySaleRepo) Append(ctx context.Context, s Sale) error {
	r.rows = append(r.rows, s)
	r.lastID = s.ID
	return nil
}

func (r *memorySaleRepo) LastID(ctx context.Context) (string, error) {
	return r.lastID, nil
}

type fakeProducts struct {
	stock map[string]int
	list  []products.Product
}

func (f *fakeProducts) UpdateQuantity(ctx context.Context, productID string, delta int) (int, error) {
	current, ok := f.stock[productID]
	if !ok {
		return 0, shared.ErrNotFound
	}
	if current+delta < 0 {
		return 0, shared.ErrInsufficientStock
	}
	f.stock[productID] = current + delta
	return f.stock[productID], nil
}

func (f *fakeProducts) List(ctx context.Context) ([]products.Product, error) {
	return append([]products.Product(nil), f.list...), nil
}

type fixedClock struct {
	day time.Time
}

func (c fixedClock) Today() time.Time {
	return c.day
}

var testDay = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func newTestService(repo *memorySaleRepo, prods *fakeProducts) *Service {
	return NewService(repo, prods, fixedClock{day: testDay}, nil, nil)
}

func TestRecordDeductsStockThenAppends(t *testing.T) {
	repo := &memorySaleRepo{}
	prods := &fakeProducts{stock: map[string]int{"PROD001": 85}}
	svc := newTestService(repo, prods)

	sale, err := svc.Record(context.Background(), "PROD001", 5)
	require.NoError(t, err)
	require.Equal(t, "SALE001", sale.ID)
	require.Equal(t, testDay, sale.SaleDate)
	require.Equal(t, 80, prods.stock["PROD001"])
	require.Len(t, repo.rows, 1)
}

func TestRecordLeavesNoRowWhenDeductionFails(t *testing.T) {
	repo := &memorySaleRepo{}
	prods := &fakeProducts{stock: map[string]int{"PROD001": 3}}
	svc := newTestService(repo, prods)

	_, err := svc.Record(context.Background(), "PROD001", 5)
	require.ErrorIs(t, err, shared.ErrInsufficientStock)
	require.Empty(t, repo.rows)
	require.Equal(t, 3, prods.stock["PROD001"])
}

func TestRecordRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(&memorySaleRepo{}, &fakeProducts{stock: map[string]int{}})

	_, err := svc.Record(context.Background(), "PROD001", 0)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestRecordUnknownProduct(t *testing.T) {
	svc := newTestService(&memorySaleRepo{}, &fakeProducts{stock: map[string]int{}})

	_, err := svc.Record(context.Background(), "PROD404", 5)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSummaryJoinsProductsAndComputesRevenue(t *testing.T) {
	repo := &memorySaleRepo{rows: []Sale{
		{ID: "SALE001", ProductID: "PROD001", QuantitySold: 5, SaleDate: testDay},
		{ID: "SALE002", ProductID: "PROD001", QuantitySold: 3, SaleDate: testDay},
		{ID: "SALE003", ProductID: "PROD002", QuantitySold: 2, SaleDate: testDay},
	}}
	prods := &fakeProducts{list: []products.Product{
		{ID: "PROD001", Name: "Widget", CostPerUnit: 2.5},
		{ID: "PROD002", Name: "Gadget", CostPerUnit: 4},
	}}
	svc := newTestService(repo, prods)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, []ProductSales{
		{ProductID: "PROD001", Name: "Widget", CostPerUnit: 2.5, QuantitySold: 8, TotalRevenue: 20},
		{ProductID: "PROD002", Name: "Gadget", CostPerUnit: 4, QuantitySold: 2, TotalRevenue: 8},
	}, summary)
}

func TestSummaryExcludesDeletedProducts(t *testing.T) {
	repo := &memorySaleRepo{rows: []Sale{
		{ID: "SALE001", ProductID: "PROD001", QuantitySold: 5, SaleDate: testDay},
		{ID: "SALE002", ProductID: "PRODGONE", QuantitySold: 9, SaleDate: testDay},
	}}
	prods := &fakeProducts{list: []products.Product{
		{ID: "PROD001", Name: "Widget", CostPerUnit: 2.5},
	}}
	svc := newTestService(repo, prods)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary, 1)
	require.Equal(t, "PROD001", summary[0].ProductID)
}

func TestForProductKeepsStorageOrder(t *testing.T) {
	repo := &memorySaleRepo{rows: []Sale{
		{ID: "SALE001", ProductID: "PROD001", QuantitySold: 5, SaleDate: testDay},
		{ID: "SALE002", ProductID: "PROD002", QuantitySold: 1, SaleDate: testDay},
		{ID: "SALE003", ProductID: "PROD001", QuantitySold: 2, SaleDate: testDay},
	}}
	svc := newTestService(repo, &fakeProducts{})

	list, err := svc.ForProduct(context.Background(), "PROD001")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "SALE001", list[0].ID)
	require.Equal(t, "SALE003", list[1].ID)
}
