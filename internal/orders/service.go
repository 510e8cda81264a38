package orders

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stockyard-erp/stockyard/internal/shared"
)

// IDPrefix is the order ID prefix.
const IDPrefix = "ORD"

// RepositoryPort abstracts order persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Order, error)
	Append(ctx context.Context, o Order) error
	ReplaceAll(ctx context.Context, list []Order) error
	LastID(ctx context.Context) (string, error)
}

// ProductPort is the slice of the product manager the order service
// needs: FK existence and the delivery stock deduction.
type ProductPort interface {
	Exists(ctx context.Context, id string) (bool, error)
	UpdateQuantity(ctx context.Context, productID string, delta int) (int, error)
}

// SupplierPort answers supplier existence for the order FK check.
type SupplierPort interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service coordinates order operations.
type Service struct {
	repo      RepositoryPort
	products  ProductPort
	suppliers SupplierPort
	clock     shared.Clock
	audit     shared.AuditPort
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewService builds Service. audit may be nil.
func NewService(repo RepositoryPort, products ProductPort, suppliers SupplierPort, clock shared.Clock, audit shared.AuditPort, validate *validator.Validate, logger *slog.Logger) *Service {
	return &Service{repo: repo, products: products, suppliers: suppliers, clock: clock, audit: audit, validate: validate, logger: logger}
}

// Add creates a pending order stamped with today's date. Both foreign
// keys must resolve; MOQ and stock limits are validated by the caller
// through the product manager beforehand.
func (s *Service) Add(ctx context.Context, input AddInput) (Order, error) {
	if err := s.validate.Struct(input); err != nil {
		return Order{}, shared.ValidationError(err)
	}
	ok, err := s.products.Exists(ctx, input.ProductID)
	if err != nil {
		return Order{}, err
	}
	if !ok {
		return Order{}, fmt.Errorf("%w: product %s", shared.ErrNotFound, input.ProductID)
	}
	ok, err = s.suppliers.Exists(ctx, input.SupplierID)
	if err != nil {
		return Order{}, err
	}
	if !ok {
		return Order{}, fmt.Errorf("%w: supplier %s", shared.ErrNotFound, input.SupplierID)
	}
	lastID, err := s.repo.LastID(ctx)
	if err != nil {
		return Order{}, err
	}
	id, err := shared.NextID(IDPrefix, lastID)
	if err != nil {
		return Order{}, err
	}
	order := Order{
		ID:             id,
		ProductID:      input.ProductID,
		SupplierID:     input.SupplierID,
		Quantity:       input.Quantity,
		TotalCost:      float64(input.Quantity) * input.UnitCost,
		OrderDate:      s.clock.Today(),
		DeliveryStatus: StatusPending,
	}
	if err := s.repo.Append(ctx, order); err != nil {
		return Order{}, err
	}
	s.record(ctx, "order:add", id, fmt.Sprintf("product=%s qty=%d", input.ProductID, input.Quantity))
	if s.logger != nil {
		s.logger.Info("order added", slog.String("id", id), slog.String("product", input.ProductID), slog.Int("qty", input.Quantity))
	}
	return order, nil
}

// UpdateStatus overwrites an order's delivery status. A transition into
// "Delivered" (any casing) first deducts the order quantity from the
// product's stock; if that deduction fails the status is left exactly
// as it was and the failure is surfaced. The deduction fires on every
// transition into Delivered, re-sets included.
func (s *Service) UpdateStatus(ctx context.Context, orderID, newStatus string) error {
	if strings.TrimSpace(newStatus) == "" {
		return fmt.Errorf("%w: status cannot be empty", shared.ErrValidation)
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, o := range list {
		if o.ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: order %s", shared.ErrNotFound, orderID)
	}
	if strings.EqualFold(newStatus, StatusDelivered) {
		if _, err := s.products.UpdateQuantity(ctx, list[idx].ProductID, -list[idx].Quantity); err != nil {
			return err
		}
	}
	list[idx].DeliveryStatus = newStatus
	if err := s.repo.ReplaceAll(ctx, list); err != nil {
		return err
	}
	s.record(ctx, "order:status", orderID, newStatus)
	return nil
}

// Delete removes an order by ID. Orders have no dependents, so there
// is no guard beyond existence.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, o := range list {
		if o.ID == orderID {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return fmt.Errorf("%w: order %s", shared.ErrNotFound, orderID)
	}
	if err := s.repo.ReplaceAll(ctx, kept); err != nil {
		return err
	}
	s.record(ctx, "order:delete", orderID, "")
	return nil
}

// SummaryBySupplier groups all orders by supplier and sums their total
// cost, ordered by supplier ID.
func (s *Service) SummaryBySupplier(ctx context.Context) ([]SupplierCost, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64)
	for _, o := range list {
		totals[o.SupplierID] += o.TotalCost
	}
	out := make([]SupplierCost, 0, len(totals))
	for id, total := range totals {
		out = append(out, SupplierCost{SupplierID: id, TotalCost: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SupplierID < out[j].SupplierID })
	return out, nil
}

// Search returns orders whose delivery status or date string contains
// term, case-insensitively.
func (s *Service) Search(ctx context.Context, term string) ([]Order, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	var out []Order
	for _, o := range list {
		if strings.Contains(strings.ToLower(o.DeliveryStatus), needle) ||
			strings.Contains(o.OrderDate.Format(DateLayout), needle) {
			out = append(out, o)
		}
	}
	return out, nil
}

// List returns all orders.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) record(ctx context.Context, action, id, detail string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: action, Entity: "order", EntityID: id, Detail: detail})
}
