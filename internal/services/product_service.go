package services

import (
	"context"
	"strings"

	"storefront-api/internal/domain"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService covers the catalog reads the storefront needs plus the
// admin record operations. Image handling lives with the external media
// host; ImageURL is stored as an opaque URL.
type ProductService struct {
	store repository.TxStore
}

func NewProductService(store repository.TxStore) *ProductService {
	return &ProductService{store: store}
}

type ProductInput struct {
	Name         string
	Description  string
	ImageURL     string
	Category     string
	Brand        string
	Price        decimal.Decimal
	CountInStock int
	IsFeatured   bool
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidProductInput("product name is required")
	}
	if in.Price.IsNegative() {
		return domain.ErrInvalidProductInput("price cannot be negative")
	}
	if in.CountInStock < 0 {
		return domain.ErrInvalidProductInput("stock cannot be negative")
	}
	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrPersistenceFailure(err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound(id)
	}
	return p, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &domain.Product{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		Category:     in.Category,
		Brand:        in.Brand,
		Price:        in.Price,
		CountInStock: in.CountInStock,
		IsFeatured:   in.IsFeatured,
	}
	if err := s.store.Products().Create(ctx, p); err != nil {
		return nil, domain.ErrPersistenceFailure(err)
	}
	return p, nil
}

// UpdateProduct rewrites the admin-owned fields. Stock is set, not
// decremented, here; purchase counts belong to the order workflow and are
// left alone.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	products := s.store.Products()
	p, err := products.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrPersistenceFailure(err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound(id)
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.ImageURL = in.ImageURL
	p.Category = in.Category
	p.Brand = in.Brand
	p.Price = in.Price
	p.CountInStock = in.CountInStock
	p.IsFeatured = in.IsFeatured
	if err := products.Save(ctx, p); err != nil {
		return nil, domain.ErrPersistenceFailure(err)
	}
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	products := s.store.Products()
	p, err := products.FindByID(ctx, id)
	if err != nil {
		return domain.ErrPersistenceFailure(err)
	}
	if p == nil {
		return domain.ErrProductNotFound(id)
	}
	if err := products.Delete(ctx, id); err != nil {
		return domain.ErrPersistenceFailure(err)
	}
	return nil
}
