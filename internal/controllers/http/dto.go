package http

import (
	"storefront-api/internal/domain"

	"github.com/shopspring/decimal"
)

// Order item requests carry no price field on purpose: pricing is always
// done server-side from the product store.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest      `json:"orderItems"`
	ShippingAddress *domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"imageUrl"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int             `json:"countInStock"`
	IsFeatured   bool            `json:"isFeatured"`
}
