package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the authoritative record for price and stock. The order workflow
// is the only writer of CountInStock and PurchaseCount; admin operations own
// the rest.
type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string          `json:"name" gorm:"not null"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl"`
	Category      string          `json:"category" gorm:"index"`
	Brand         string          `json:"brand"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CountInStock  int             `json:"countInStock" gorm:"not null;default:0"`
	PurchaseCount int             `json:"purchaseCount" gorm:"not null;default:0"`
	IsFeatured    bool            `json:"isFeatured" gorm:"default:false"`
	Rating        decimal.Decimal `json:"rating" gorm:"type:decimal(3,2);default:0"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}
