package suppliers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stockyard-erp/stockyard/internal/shared"
)

// IDPrefix is the supplier ID prefix.
const IDPrefix = "SUP"

// RepositoryPort abstracts supplier persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Supplier, error)
	Append(ctx context.Context, s Supplier) error
	ReplaceAll(ctx context.Context, list []Supplier) error
	LastID(ctx context.Context) (string, error)
}

// ReferencePort answers whether a sibling table still references a
// supplier. Implemented by the product and order repositories.
type ReferencePort interface {
	ExistsForSupplier(ctx context.Context, supplierID string) (bool, error)
}

// Service coordinates supplier operations.
type Service struct {
	repo     RepositoryPort
	products ReferencePort
	orders   ReferencePort
	audit    shared.AuditPort
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService builds Service. audit may be nil.
func NewService(repo RepositoryPort, products, orders ReferencePort, audit shared.AuditPort, validate *validator.Validate, logger *slog.Logger) *Service {
	return &Service{repo: repo, products: products, orders: orders, audit: audit, validate: validate, logger: logger}
}

// Add validates the input, allocates the next supplier ID and appends
// the new row.
func (s *Service) Add(ctx context.Context, input AddInput) (Supplier, error) {
	if err := s.validate.Struct(input); err != nil {
		return Supplier{}, shared.ValidationError(err)
	}
	lastID, err := s.repo.LastID(ctx)
	if err != nil {
		return Supplier{}, err
	}
	id, err := shared.NextID(IDPrefix, lastID)
	if err != nil {
		return Supplier{}, err
	}
	supplier := Supplier{ID: id, Name: input.Name, Location: input.Location, Contact: input.Contact}
	if err := s.repo.Append(ctx, supplier); err != nil {
		return Supplier{}, err
	}
	s.record(ctx, "supplier:add", id, fmt.Sprintf("name=%s location=%s", input.Name, input.Location))
	if s.logger != nil {
		s.logger.Info("supplier added", slog.String("id", id), slog.String("name", input.Name))
	}
	return supplier, nil
}

// Update overwrites name, location and contact of an existing supplier.
func (s *Service) Update(ctx context.Context, id string, input AddInput) error {
	if err := s.validate.Struct(input); err != nil {
		return shared.ValidationError(err)
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range list {
		if list[i].ID == id {
			list[i].Name = input.Name
			list[i].Location = input.Location
			list[i].Contact = input.Contact
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: supplier %s", shared.ErrNotFound, id)
	}
	if err := s.repo.ReplaceAll(ctx, list); err != nil {
		return err
	}
	s.record(ctx, "supplier:update", id, fmt.Sprintf("name=%s", input.Name))
	return nil
}

// Delete removes a supplier. The deletion is refused while any product
// or order still references the supplier.
func (s *Service) Delete(ctx context.Context, id string) error {
	if referenced, err := s.products.ExistsForSupplier(ctx, id); err != nil {
		return err
	} else if referenced {
		return fmt.Errorf("%w: supplier %s has associated products", shared.ErrDependency, id)
	}
	if referenced, err := s.orders.ExistsForSupplier(ctx, id); err != nil {
		return err
	} else if referenced {
		return fmt.Errorf("%w: supplier %s has associated orders", shared.ErrDependency, id)
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, supplier := range list {
		if supplier.ID == id {
			found = true
			continue
		}
		kept = append(kept, supplier)
	}
	if !found {
		return fmt.Errorf("%w: supplier %s", shared.ErrNotFound, id)
	}
	if err := s.repo.ReplaceAll(ctx, kept); err != nil {
		return err
	}
	s.record(ctx, "supplier:delete", id, "")
	return nil
}

// Search returns suppliers whose name or location contains term,
// case-insensitively.
func (s *Service) Search(ctx context.Context, term string) ([]Supplier, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	var out []Supplier
	for _, supplier := range list {
		if strings.Contains(strings.ToLower(supplier.Name), needle) ||
			strings.Contains(strings.ToLower(supplier.Location), needle) {
			out = append(out, supplier)
		}
	}
	return out, nil
}

// List returns all suppliers.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}

// Exists reports whether a supplier with the given ID is on file.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}
	for _, supplier := range list {
		if supplier.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) record(ctx context.Context, action, id, detail string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: action, Entity: "supplier", EntityID: id, Detail: detail})
}
