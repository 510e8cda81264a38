package products

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stockyard-erp/stockyard/internal/shared"
)

// IDPrefix is the product ID prefix.
const IDPrefix = "PROD"

// RepositoryPort abstracts product persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Product, error)
	Append(ctx context.Context, p Product) error
	ReplaceAll(ctx context.Context, list []Product) error
	LastID(ctx context.Context) (string, error)
}

// SupplierPort answers supplier existence for the product FK check.
type SupplierPort interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// ReferencePort answers whether a sibling table still references a
// product. Implemented by the order and sale repositories.
type ReferencePort interface {
	ExistsForProduct(ctx context.Context, productID string) (bool, error)
}

// Service coordinates product operations.
type Service struct {
	repo      RepositoryPort
	suppliers SupplierPort
	orders    ReferencePort
	sales     ReferencePort
	audit     shared.AuditPort
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewService builds Service. audit may be nil.
func NewService(repo RepositoryPort, suppliers SupplierPort, orders, sales ReferencePort, audit shared.AuditPort, validate *validator.Validate, logger *slog.Logger) *Service {
	return &Service{repo: repo, suppliers: suppliers, orders: orders, sales: sales, audit: audit, validate: validate, logger: logger}
}

// Add validates the input, enforces SKU uniqueness and the supplier FK,
// allocates the next product ID and appends the row.
func (s *Service) Add(ctx context.Context, input AddInput) (Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return Product{}, shared.ValidationError(err)
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range list {
		if p.SKU == input.SKU {
			return Product{}, fmt.Errorf("%w: %s", shared.ErrDuplicateSKU, input.SKU)
		}
	}
	ok, err := s.suppliers.Exists(ctx, input.SupplierID)
	if err != nil {
		return Product{}, err
	}
	if !ok {
		return Product{}, fmt.Errorf("%w: supplier %s", shared.ErrNotFound, input.SupplierID)
	}
	lastID, err := s.repo.LastID(ctx)
	if err != nil {
		return Product{}, err
	}
	id, err := shared.NextID(IDPrefix, lastID)
	if err != nil {
		return Product{}, err
	}
	product := Product{
		ID:           id,
		Name:         input.Name,
		SKU:          input.SKU,
		CostPerUnit:  input.CostPerUnit,
		MOQ:          input.MOQ,
		AvailableQty: input.AvailableQty,
		SupplierID:   input.SupplierID,
	}
	if err := s.repo.Append(ctx, product); err != nil {
		return Product{}, err
	}
	s.record(ctx, "product:add", id, fmt.Sprintf("sku=%s qty=%d", input.SKU, input.AvailableQty))
	if s.logger != nil {
		s.logger.Info("product added", slog.String("id", id), slog.String("sku", input.SKU))
	}
	return product, nil
}

// Update overwrites every mutable field of an existing product. A
// changed SKU is re-checked for uniqueness excluding the product itself.
func (s *Service) Update(ctx context.Context, id string, input AddInput) error {
	if err := s.validate.Struct(input); err != nil {
		return shared.ValidationError(err)
	}
	ok, err := s.suppliers.Exists(ctx, input.SupplierID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: supplier %s", shared.ErrNotFound, input.SupplierID)
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, p := range list {
		if p.ID == id {
			idx = i
			continue
		}
		if p.SKU == input.SKU {
			return fmt.Errorf("%w: %s", shared.ErrDuplicateSKU, input.SKU)
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: product %s", shared.ErrNotFound, id)
	}
	list[idx].Name = input.Name
	list[idx].SKU = input.SKU
	list[idx].CostPerUnit = input.CostPerUnit
	list[idx].MOQ = input.MOQ
	list[idx].AvailableQty = input.AvailableQty
	list[idx].SupplierID = input.SupplierID
	if err := s.repo.ReplaceAll(ctx, list); err != nil {
		return err
	}
	s.record(ctx, "product:update", id, fmt.Sprintf("sku=%s", input.SKU))
	return nil
}

// Delete removes a product unless an order or sale still references it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if referenced, err := s.orders.ExistsForProduct(ctx, id); err != nil {
		return err
	} else if referenced {
		return fmt.Errorf("%w: product %s has associated orders", shared.ErrDependency, id)
	}
	if referenced, err := s.sales.ExistsForProduct(ctx, id); err != nil {
		return err
	} else if referenced {
		return fmt.Errorf("%w: product %s has associated sales", shared.ErrDependency, id)
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, p := range list {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("%w: product %s", shared.ErrNotFound, id)
	}
	if err := s.repo.ReplaceAll(ctx, kept); err != nil {
		return err
	}
	s.record(ctx, "product:delete", id, "")
	return nil
}

// Get returns one product by ID.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: product %s", shared.ErrNotFound, id)
}

// Exists reports whether a product with the given ID is on file.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ValidateOrderQuantity checks an order quantity against the product.
// Checks run in a fixed order and the first failure wins: unknown
// product, non-positive quantity, below MOQ, above available stock.
func (s *Service) ValidateOrderQuantity(ctx context.Context, productID string, qty int) error {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be a positive number", shared.ErrValidation)
	}
	if qty < product.MOQ {
		return fmt.Errorf("%w: quantity must be at least %d (MOQ)", shared.ErrValidation, product.MOQ)
	}
	if qty > product.AvailableQty {
		return fmt.Errorf("%w: only %d units available", shared.ErrValidation, product.AvailableQty)
	}
	return nil
}

// UpdateQuantity applies a signed delta to a product's available
// quantity. A delta that would drive the quantity negative is refused
// and the stored value stays untouched. Returns the new quantity.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, delta int) (int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	idx := -1
	for i, p := range list {
		if p.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w: product %s", shared.ErrNotFound, productID)
	}
	newQty := list[idx].AvailableQty + delta
	if newQty < 0 {
		return 0, fmt.Errorf("%w: cannot reduce quantity below 0, current quantity %d", shared.ErrInsufficientStock, list[idx].AvailableQty)
	}
	list[idx].AvailableQty = newQty
	if err := s.repo.ReplaceAll(ctx, list); err != nil {
		return 0, err
	}
	s.record(ctx, "product:quantity", productID, fmt.Sprintf("delta=%d new=%d", delta, newQty))
	return newQty, nil
}

// LowStock returns products whose available quantity is at or below
// threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]Product, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Product
	for _, p := range list {
		if p.AvailableQty <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search returns products whose name or SKU contains term,
// case-insensitively.
func (s *Service) Search(ctx context.Context, term string) ([]Product, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	var out []Product
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// List returns all products.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) record(ctx context.Context, action, id, detail string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: action, Entity: "product", EntityID: id, Detail: detail})
}
