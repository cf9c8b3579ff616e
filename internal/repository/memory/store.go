// Package memory holds an in-memory repository.TxStore with real
// transaction semantics: a transaction takes the store lock for its whole
// body and rolls back to a snapshot when the body fails. Used by tests in
// place of MySQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"storefront-api/internal/domain"
	"storefront-api/internal/repository"
)

type dataset struct {
	products map[string]domain.Product
	orders   map[string]domain.Order
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		products: make(map[string]domain.Product, len(d.products)),
		orders:   make(map[string]domain.Order, len(d.orders)),
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.orders {
		o := v
		o.Items = append([]domain.OrderLineItem(nil), v.Items...)
		c.orders[k] = o
	}
	return c
}

type Store struct {
	mu   sync.Mutex
	data *dataset
}

func NewStore() *Store {
	return &Store{data: &dataset{
		products: make(map[string]domain.Product),
		orders:   make(map[string]domain.Order),
	}}
}

// Seed inserts a product directly, bypassing validation. Test setup only.
func (s *Store) Seed(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.products[p.ID] = p
}

func (s *Store) Products() repository.ProductRepository {
	return &productView{store: s}
}

func (s *Store) Orders() repository.OrderRepository {
	return &orderView{store: s}
}

// InTransaction serializes transactions behind the store lock; the lock is
// the in-memory stand-in for MySQL's row locks. On error the dataset is
// restored from a pre-transaction snapshot, so partial writes are never
// observable.
func (s *Store) InTransaction(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	tx := &txStore{data: s.data}
	if err := fn(tx); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

var _ repository.TxStore = (*Store)(nil)

// txStore serves repository calls made inside InTransaction; the store lock
// is already held, so it reads the dataset directly.
type txStore struct {
	data *dataset
}

func (t *txStore) Products() repository.ProductRepository { return &productView{data: t.data} }
func (t *txStore) Orders() repository.OrderRepository     { return &orderView{data: t.data} }

// productView works either against a locked Store (store != nil) or inside a
// transaction (data != nil, lock already held).
type productView struct {
	store *Store
	data  *dataset
}

func (v *productView) with(fn func(d *dataset) error) error {
	if v.store != nil {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
		return fn(v.store.data)
	}
	return fn(v.data)
}

func (v *productView) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var out *domain.Product
	err := v.with(func(d *dataset) error {
		if p, ok := d.products[id]; ok {
			cp := p
			out = &cp
		}
		return nil
	})
	return out, err
}

func (v *productView) FindByIDForUpdate(ctx context.Context, id string) (*domain.Product, error) {
	// the store lock already serializes writers
	return v.FindByID(ctx, id)
}

func (v *productView) Create(ctx context.Context, p *domain.Product) error {
	return v.with(func(d *dataset) error {
		d.products[p.ID] = *p
		return nil
	})
}

func (v *productView) Save(ctx context.Context, p *domain.Product) error {
	return v.with(func(d *dataset) error {
		d.products[p.ID] = *p
		return nil
	})
}

func (v *productView) Delete(ctx context.Context, id string) error {
	return v.with(func(d *dataset) error {
		delete(d.products, id)
		return nil
	})
}

type orderView struct {
	store *Store
	data  *dataset
}

func (v *orderView) with(fn func(d *dataset) error) error {
	if v.store != nil {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
		return fn(v.store.data)
	}
	return fn(v.data)
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderLineItem(nil), o.Items...)
	return o
}

func (v *orderView) Insert(ctx context.Context, order *domain.Order) error {
	return v.with(func(d *dataset) error {
		d.orders[order.ID] = copyOrder(*order)
		return nil
	})
}

func (v *orderView) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var out *domain.Order
	err := v.with(func(d *dataset) error {
		if o, ok := d.orders[id]; ok {
			cp := copyOrder(o)
			out = &cp
		}
		return nil
	})
	return out, err
}

func (v *orderView) FindAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := v.with(func(d *dataset) error {
		for _, o := range d.orders {
			out = append(out, copyOrder(o))
		}
		return nil
	})
	sortNewestFirst(out)
	return out, err
}

func (v *orderView) FindByUserEmail(ctx context.Context, email string) ([]domain.Order, error) {
	var out []domain.Order
	err := v.with(func(d *dataset) error {
		for _, o := range d.orders {
			if o.UserEmail == email {
				out = append(out, copyOrder(o))
			}
		}
		return nil
	})
	sortNewestFirst(out)
	return out, err
}

func (v *orderView) Update(ctx context.Context, order *domain.Order) error {
	return v.with(func(d *dataset) error {
		if existing, ok := d.orders[order.ID]; ok {
			existing.Status = order.Status
			existing.IsDelivered = order.IsDelivered
			existing.DeliveredAt = order.DeliveredAt
			d.orders[order.ID] = existing
		}
		return nil
	})
}

func sortNewestFirst(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
