package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stockyard-erp/stockyard/internal/shared"
)

type memoryOrderRepo struct {
	rows   []Order
	lastID string
}

func (r *memoryOrderRepo) List(ctx context.Context) ([]Order, error) {
	return append([]Order(nil), r.rows...), nil
}

func (r *memoryOrderRepo) Append(ctx context.Context, o Order) error {
	r.rows = append(r.rows, o)
	r.lastID = o.ID
	return nil
}

func (r *memoryOrderRepo) ReplaceAll(ctx context.Context, list []Order) error {
	r.rows = append([]Order(nil), list...)
	return nil
}

func (r *memoryOrderRepo) LastID(ctx context.Context) (string, error) {
	return r.lastID, nil
}

type fakeProducts struct {
	known  bool
	stock  int
	deltas []int
}

func (f *fakeProducts) Exists(ctx context.Context, id string) (bool, error) {
	return f.known, nil
}

func (f *fakeProducts) UpdateQuantity(ctx context.Context, productID string, delta int) (int, error) {
	if f.stock+delta < 0 {
		return 0, shared.ErrInsufficientStock
	}
	f.stock += delta
	f.deltas = append(f.deltas, delta)
	return f.stock, nil
}

type fakeSuppliers struct {
	known bool
}

func (f fakeSuppliers) Exists(ctx context.Context, id string) (bool, error) {
	return f.known, nil
}

type fixedClock struct {
	day time.Time
}

func (c fixedClock) Today() time.Time {
	return c.day
}

var testDay = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func newTestService(repo *memoryOrderRepo, products *fakeProducts, suppliers fakeSuppliers) *Service {
	return NewService(repo, products, suppliers, fixedClock{day: testDay}, nil, shared.NewValidator(), nil)
}

func TestAddStampsDateAndComputesTotal(t *testing.T) {
	repo := &memoryOrderRepo{}
	svc := newTestService(repo, &fakeProducts{known: true, stock: 100}, fakeSuppliers{known: true})

	order, err := svc.Add(context.Background(), AddInput{ProductID: "PROD001", SupplierID: "SUP001", Quantity: 10, UnitCost: 2.5})
	require.NoError(t, err)
	require.Equal(t, "ORD001", order.ID)
	require.Equal(t, 25.0, order.TotalCost)
	require.Equal(t, StatusPending, order.DeliveryStatus)
	require.Equal(t, testDay, order.OrderDate)
}

func TestAddRejectsUnknownForeignKeys(t *testing.T) {
	svc := newTestService(&memoryOrderRepo{}, &fakeProducts{known: false}, fakeSuppliers{known: true})
	_, err := svc.Add(context.Background(), AddInput{ProductID: "PROD404", SupplierID: "SUP001", Quantity: 1, UnitCost: 1})
	require.ErrorIs(t, err, shared.ErrNotFound)

	svc = newTestService(&memoryOrderRepo{}, &fakeProducts{known: true}, fakeSuppliers{known: false})
	_, err = svc.Add(context.Background(), AddInput{ProductID: "PROD001", SupplierID: "SUP404", Quantity: 1, UnitCost: 1})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeliveredDeductsStockOnce(t *testing.T) {
	repo := &memoryOrderRepo{rows: []Order{{
		ID: "ORD001", ProductID: "PROD001", SupplierID: "SUP001",
		Quantity: 10, TotalCost: 25, OrderDate: testDay, DeliveryStatus: StatusPending,
	}}, lastID: "ORD001"}
	products := &fakeProducts{known: true, stock: 100}
	svc := newTestService(repo, products, fakeSuppliers{known: true})

	require.NoError(t, svc.UpdateStatus(context.Background(), "ORD001", "Delivered"))
	require.Equal(t, 90, products.stock)
	require.Equal(t, []int{-10}, products.deltas)
	require.Equal(t, "Delivered", repo.rows[0].DeliveryStatus)
}

func TestDeliveredMatchedCaseInsensitively(t *testing.T) {
	repo := &memoryOrderRepo{rows: []Order{{
		ID: "ORD001", ProductID: "PROD001", Quantity: 4, OrderDate: testDay, DeliveryStatus: StatusShipped,
	}}, lastID: "ORD001"}
	products := &fakeProducts{known: true, stock: 10}
	svc := newTestService(repo, products, fakeSuppliers{known: true})

	require.NoError(t, svc.UpdateStatus(context.Background(), "ORD001", "delivered"))
	require.Equal(t, 6, products.stock)
}

func TestDeliveredRetriggersDeduction(t *testing.T) {
	// Re-setting Delivered fires the deduction again. Documented
	// behaviour, not a bug to guard against.
	repo := &memoryOrderRepo{rows: []Order{{
		ID: "ORD001", ProductID: "PROD001", Quantity: 10, OrderDate: testDay, DeliveryStatus: StatusDelivered,
	}}, lastID: "ORD001"}
	products := &fakeProducts{known: true, stock: 30}
	svc := newTestService(repo, products, fakeSuppliers{known: true})

	require.NoError(t, svc.UpdateStatus(context.Background(), "ORD001", "Delivered"))
	require.Equal(t, 20, products.stock)
}

func TestDeliveredAbortsWhenStockInsufficient(t *testing.T) {
	repo := &memoryOrderRepo{rows: []Order{{
		ID: "ORD001", ProductID: "PROD001", Quantity: 10, OrderDate: testDay, DeliveryStatus: StatusShipped,
	}}, lastID: "ORD001"}
	products := &fakeProducts{known: true, stock: 5}
	svc := newTestService(repo, products, fakeSuppliers{known: true})

	err := svc.UpdateStatus(context.Background(), "ORD001", "Delivered")
	require.ErrorIs(t, err, shared.ErrInsufficientStock)
	require.Equal(t, StatusShipped, repo.rows[0].DeliveryStatus)
	require.Equal(t, 5, products.stock)
}

func TestNonDeliveredStatusSkipsDeduction(t *testing.T) {
	repo := &memoryOrderRepo{rows: []Order{{
		ID: "ORD001", ProductID: "PROD001", Quantity: 10, OrderDate: testDay, DeliveryStatus: StatusPending,
	}}, lastID: "ORD001"}
	products := &fakeProducts{known: true, stock: 5}
	svc := newTestService(repo, products, fakeSuppliers{known: true})

	require.NoError(t, svc.UpdateStatus(context.Background(), "ORD001", "Shipped"))
	require.Empty(t, products.deltas)
	require.Equal(t, "Shipped", repo.rows[0].DeliveryStatus)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := newTestService(&memoryOrderRepo{}, &fakeProducts{known: true}, fakeSuppliers{known: true})
	err := svc.UpdateStatus(context.Background(), "ORD404", "Shipped")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteIsUnconditional(t *testing.T) {
	repo := &memoryOrderRepo{rows: []Order{
		{ID: "ORD001", OrderDate: testDay},
		{ID: "ORD002", OrderDate: testDay},
	}, lastID: "ORD002"}
	svc := newTestService(repo, &fakeProducts{known: true}, fakeSuppliers{known: true})

	require.NoError(t, svc.Delete(context.Background(), "ORD001"))
	require.Len(t, repo.rows, 1)
	require.Equal(t, "ORD002", repo.rows[0].ID)

	require.ErrorIs(t, svc.Delete(context.Background(), "ORD404"), shared.ErrNotFound)
}

func TestSummaryBySupplierSumsTotals(t *testing.T) {
	repo := &memoryOrderRepo{rows: []Order{
		{ID: "ORD001", SupplierID: "SUP001", TotalCost: 25, OrderDate: testDay},
		{ID: "ORD002", SupplierID: "SUP002", TotalCost: 10, OrderDate: testDay},
		{ID: "ORD003", SupplierID: "SUP001", TotalCost: 5, OrderDate: testDay},
	}}
	svc := newTestService(repo, &fakeProducts{known: true}, fakeSuppliers{known: true})

	summary, err := svc.SummaryBySupplier(context.Background())
	require.NoError(t, err)
	require.Equal(t, []SupplierCost{
		{SupplierID: "SUP001", TotalCost: 30},
		{SupplierID: "SUP002", TotalCost: 10},
	}, summary)
}

func TestSearchMatchesStatusOrDate(t *testing.T) {
	repo := &memoryOrderRepo{rows: []Order{
		{ID: "ORD001", OrderDate: testDay, DeliveryStatus: "Pending"},
		{ID: "ORD002", OrderDate: testDay.AddDate(0, 1, 0), DeliveryStatus: "Shipped"},
	}}
	svc := newTestService(repo, &fakeProducts{known: true}, fakeSuppliers{known: true})
	ctx := context.Background()

	byStatus, err := svc.Search(ctx, "pend")
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	require.Equal(t, "ORD001", byStatus[0].ID)

	byDate, err := svc.Search(ctx, "2026-10")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	require.Equal(t, "ORD002", byDate[0].ID)
}
