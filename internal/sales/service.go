package sales

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/stockyard-erp/stockyard/internal/products"
	"github.com/stockyard-erp/stockyard/internal/shared"
)

// IDPrefix is the sale ID prefix.
const IDPrefix = "SALE"

// RepositoryPort abstracts sale persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Sale, error)
	Append(ctx context.Context, s Sale) error
	LastID(ctx context.Context) (string, error)
}

// ProductPort is the slice of the product manager the sales service
// needs: the stock deduction and the product table for the summary
// join.
type ProductPort interface {
	UpdateQuantity(ctx context.Context, productID string, delta int) (int, error)
	List(ctx context.Context) ([]products.Product, error)
}

// Service coordinates sale operations.
type Service struct {
	repo     RepositoryPort
	products ProductPort
	clock    shared.Clock
	audit    shared.AuditPort
	logger   *slog.Logger
}

// NewService builds Service. audit may be nil.
func NewService(repo RepositoryPort, products ProductPort, clock shared.Clock, audit shared.AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, products: products, clock: clock, audit: audit, logger: logger}
}

// Record books a sale of qty units. The stock deduction goes through
// the product manager first; when it fails (unknown product, stock
// would go negative) no sale row is written, so tables never end up
// half-updated. On success the sale is stamped with today's date.
func (s *Service) Record(ctx context.Context, productID string, qty int) (Sale, error) {
	if qty <= 0 {
		return Sale{}, fmt.Errorf("%w: quantity sold must be a positive number", shared.ErrValidation)
	}
	if _, err := s.products.UpdateQuantity(ctx, productID, -qty); err != nil {
		return Sale{}, err
	}
	lastID, err := s.repo.LastID(ctx)
	if err != nil {
		return Sale{}, err
	}
	id, err := shared.NextID(IDPrefix, lastID)
	if err != nil {
		return Sale{}, err
	}
	sale := Sale{ID: id, ProductID: productID, QuantitySold: qty, SaleDate: s.clock.Today()}
	if err := s.repo.Append(ctx, sale); err != nil {
		return Sale{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "sale:record",
			Entity:   "sale",
			EntityID: id,
			Detail:   fmt.Sprintf("product=%s qty=%d", productID, qty),
		})
	}
	if s.logger != nil {
		s.logger.Info("sale recorded", slog.String("id", id), slog.String("product", productID), slog.Int("qty", qty))
	}
	return sale, nil
}

// Summary groups sales by product, sums units sold and joins the
// product table for name and unit cost. Revenue is units sold times
// cost per unit. Products no longer on file are excluded.
func (s *Service) Summary(ctx context.Context) ([]ProductSales, error) {
	saleRows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	productRows, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	sold := make(map[string]int)
	for _, sale := range saleRows {
		sold[sale.ProductID] += sale.QuantitySold
	}
	byID := make(map[string]products.Product, len(productRows))
	for _, p := range productRows {
		byID[p.ID] = p
	}
	out := make([]ProductSales, 0, len(sold))
	for pid, qty := range sold {
		product, ok := byID[pid]
		if !ok {
			continue
		}
		out = append(out, ProductSales{
			ProductID:    pid,
			Name:         product.Name,
			CostPerUnit:  product.CostPerUnit,
			QuantitySold: qty,
			TotalRevenue: float64(qty) * product.CostPerUnit,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// ForProduct returns all sales of one product in storage order.
func (s *Service) ForProduct(ctx context.Context, productID string) ([]Sale, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Sale
	for _, sale := range list {
		if sale.ProductID == productID {
			out = append(out, sale)
		}
	}
	return out, nil
}

// List returns all sales.
func (s *Service) List(ctx context.Context) ([]Sale, error) {
	return s.repo.List(ctx)
}
