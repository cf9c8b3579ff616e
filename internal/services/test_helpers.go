package services

import (
	"storefront-api/internal/domain"
	"storefront-api/internal/repository/memory"

	"github.com/shopspring/decimal"
)

func seedProduct(store *memory.Store, id, name string, price string, stock int) domain.Product {
	p := domain.Product{
		ID:           id,
		Name:         name,
		ImageURL:     "https://img.example.com/" + id + ".jpg",
		Price:        decimal.RequireFromString(price),
		CountInStock: stock,
	}
	store.Seed(p)
	return p
}

const (
	testUserEmail  = "shopper@example.com"
	testAdminEmail = "admin@example.com"
)
