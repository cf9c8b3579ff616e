package repository

import (
	"context"

	"storefront-api/internal/domain"
)

// ProductRepository reads and writes the authoritative product records.
// FindByID returns (nil, nil) when no product exists. FindByIDForUpdate must
// take a write lock on the row when called inside a transaction, so that
// concurrent placements against the same product serialize.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDForUpdate(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Save(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository is the order ledger. Orders are inserted once and later
// mutated only through Update (status transitions).
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByUserEmail(ctx context.Context, email string) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
}

// Store groups the repositories sharing one storage session.
type Store interface {
	Products() ProductRepository
	Orders() OrderRepository
}

// TxStore opens transactions. The Store handed to fn is bound to the
// transaction; every read and write through it commits or rolls back as one
// unit. The handle is passed explicitly, never held as package state.
type TxStore interface {
	Store
	InTransaction(ctx context.Context, fn func(Store) error) error
}
