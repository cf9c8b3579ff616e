package services

import (
	"context"
	"errors"
	"time"

	"storefront-api/internal/domain"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineRequest is one requested product+quantity pair. Prices are never
// accepted from the caller; they come from the product store at validation
// time.
type LineRequest struct {
	ProductID string
	Qty       int
}

type PlaceOrderInput struct {
	Items           []LineRequest
	ShippingAddress *domain.ShippingAddress
	PaymentMethod   string
}

// OrderService runs the order placement workflow and the order ledger
// operations. All storage access goes through the injected store; placement
// shares one transaction handle for every read and write it performs.
type OrderService struct {
	store repository.TxStore
	now   func() time.Time
}

func NewOrderService(store repository.TxStore) *OrderService {
	return &OrderService{store: store, now: time.Now}
}

// PlaceOrder validates each requested line in request order, prices it from
// the stored product record, reserves stock, and persists the order — all
// inside one transaction. The first violated precondition aborts the whole
// call and nothing is left mutated.
func (s *OrderService) PlaceOrder(ctx context.Context, userEmail string, in PlaceOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrNoItemsProvided()
	}
	if userEmail == "" {
		return nil, domain.ErrUnauthenticated()
	}

	var created *domain.Order
	err := s.store.InTransaction(ctx, func(tx repository.Store) error {
		products := tx.Products()
		total := decimal.Zero
		lines := make([]domain.OrderLineItem, 0, len(in.Items))

		for _, req := range in.Items {
			p, err := products.FindByIDForUpdate(ctx, req.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrProductNotFound(req.ProductID)
			}
			if req.Qty <= 0 {
				return domain.ErrInvalidQuantity(p.ID)
			}
			if p.CountInStock < req.Qty {
				return domain.ErrInsufficientStock(p.ID, p.CountInStock)
			}

			p.CountInStock -= req.Qty
			p.PurchaseCount += req.Qty
			if err := products.Save(ctx, p); err != nil {
				return err
			}

			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(req.Qty))))
			lines = append(lines, domain.OrderLineItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				ImageURL:  p.ImageURL,
				Qty:       req.Qty,
			})
		}

		payment := in.PaymentMethod
		if payment == "" {
			payment = domain.DefaultPaymentMethod
		}

		order := &domain.Order{
			ID:              uuid.NewString(),
			UserEmail:       userEmail,
			Items:           lines,
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   payment,
			TotalPrice:      total,
			Status:          domain.StatusProcessing,
			CreatedAt:       s.now(),
		}
		if err := tx.Orders().Insert(ctx, order); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, asDomainError(err)
	}
	return created, nil
}

// UpdateStatus moves an order through the status state machine. Single-record
// write; no cross-document transaction needed.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	orders := s.store.Orders()
	order, err := orders.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrPersistenceFailure(err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound(id)
	}
	if err := order.Transition(status, s.now()); err != nil {
		return nil, err
	}
	if err := orders.Update(ctx, order); err != nil {
		return nil, domain.ErrPersistenceFailure(err)
	}
	return order, nil
}

// GetOrder fetches one order; non-admin callers only see their own.
func (s *OrderService) GetOrder(ctx context.Context, id, requesterEmail string, admin bool) (*domain.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrPersistenceFailure(err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound(id)
	}
	if !admin && order.UserEmail != requesterEmail {
		return nil, domain.ErrForbidden()
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	out, err := s.store.Orders().FindAll(ctx)
	if err != nil {
		return nil, domain.ErrPersistenceFailure(err)
	}
	return out, nil
}

func (s *OrderService) ListOrdersForUser(ctx context.Context, email string) ([]domain.Order, error) {
	out, err := s.store.Orders().FindByUserEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrPersistenceFailure(err)
	}
	return out, nil
}

// asDomainError passes typed precondition failures through untouched and
// wraps anything else (driver errors, aborted transactions) as a
// persistence failure.
func asDomainError(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.ErrPersistenceFailure(err)
}
