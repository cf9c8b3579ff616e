package mysql

import (
	"context"

	"storefront-api/internal/repository"

	"gorm.io/gorm"
)

// Store implements repository.TxStore on gorm. A Store built from a
// transaction handle scopes all repository calls to that transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Products() repository.ProductRepository {
	return &productRepo{db: s.db}
}

func (s *Store) Orders() repository.OrderRepository {
	return &orderRepo{db: s.db}
}

// InTransaction runs fn against a transaction-bound Store. Any error from fn
// rolls the whole transaction back; a nil return commits.
func (s *Store) InTransaction(ctx context.Context, fn func(repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

var _ repository.TxStore = (*Store)(nil)
