package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// DefaultPaymentMethod is the sentinel used when the caller supplies none.
const DefaultPaymentMethod = "None"

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is opaque to the order workflow; it is stored as provided.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderLineItem is a snapshot of a product at validation time. Name, price
// and image are copied so later product edits never change a placed order.
type OrderLineItem struct {
	ID        uint64          `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string          `json:"-" gorm:"type:varchar(36);not null;index"`
	ProductID string          `json:"productId" gorm:"type:varchar(36);not null"`
	Name      string          `json:"name" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL  string          `json:"imageUrl"`
	Qty       int             `json:"qty" gorm:"not null"`
}

type Order struct {
	ID              string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserEmail       string           `json:"userEmail" gorm:"not null;index"`
	Items           []OrderLineItem  `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress *ShippingAddress `json:"shippingAddress" gorm:"serializer:json"`
	PaymentMethod   string           `json:"paymentMethod" gorm:"not null;default:'None'"`
	TotalPrice      decimal.Decimal  `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus      `json:"status" gorm:"type:enum('Processing','Shipped','Delivered','Cancelled');default:'Processing'"`
	IsDelivered     bool             `json:"isDelivered" gorm:"not null;default:false"`
	DeliveredAt     *time.Time       `json:"deliveredAt"`
	CreatedAt       time.Time        `json:"createdAt" gorm:"autoCreateTime"`
}

// Transition applies a status change. A delivered order can never be
// cancelled; every other edge is allowed. Delivered sets the delivery
// marker, any other target clears it.
func (o *Order) Transition(next OrderStatus, now time.Time) error {
	if !next.Valid() {
		return ErrInvalidStatusTransition(o.Status, next)
	}
	if o.IsDelivered && next == StatusCancelled {
		return ErrInvalidStatusTransition(o.Status, next)
	}
	o.Status = next
	if next == StatusDelivered {
		o.IsDelivered = true
		o.DeliveredAt = &now
	} else {
		o.IsDelivered = false
		o.DeliveredAt = nil
	}
	return nil
}
