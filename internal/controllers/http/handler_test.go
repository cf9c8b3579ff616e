package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-api/internal/auth"
	"storefront-api/internal/domain"
	"storefront-api/internal/repository/memory"
	"storefront-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
	userEmail  = "shopper@example.com"
	adminEmail = "admin@example.com"
)

// staticVerifier maps fixed tokens onto identities; everything else fails.
type staticVerifier struct{}

func (staticVerifier) Verify(_ context.Context, token string) (auth.Identity, error) {
	switch token {
	case userToken:
		return auth.Identity{Email: userEmail}, nil
	case adminToken:
		return auth.Identity{Email: adminEmail, Admin: true}, nil
	}
	return auth.Identity{}, fmt.Errorf("unknown token")
}

func newTestServer(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	h := NewHandler(
		services.NewOrderService(store),
		services.NewProductService(store),
		staticVerifier{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	r := gin.New()
	h.RegisterRoutes(r)
	return r, store
}

func seedProduct(store *memory.Store, id, name, price string, stock int) {
	store.Seed(domain.Product{
		ID:           id,
		Name:         name,
		ImageURL:     "https://img.example.com/" + id + ".jpg",
		Price:        decimal.RequireFromString(price),
		CountInStock: stock,
	})
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(r, http.MethodPost, "/api/orders", "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a bad token", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(r, http.MethodPost, "/api/orders", "forged", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("places an order", func(t *testing.T) {
		r, store := newTestServer(t)
		seedProduct(store, "p1", "Trail Runner", "10.00", 5)

		w := doJSON(r, http.MethodPost, "/api/orders", userToken, gin.H{
			"orderItems":    []gin.H{{"productId": "p1", "qty": 3}},
			"paymentMethod": "Card",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var got domain.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, userEmail, got.UserEmail)
		assert.Equal(t, domain.StatusProcessing, got.Status)
		assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("30.00")))
	})

	t.Run("ignores client-supplied prices", func(t *testing.T) {
		r, store := newTestServer(t)
		seedProduct(store, "p1", "Trail Runner", "10.00", 5)

		// a stale or malicious price in the payload must not change the total
		w := doJSON(r, http.MethodPost, "/api/orders", userToken, gin.H{
			"orderItems": []gin.H{{"productId": "p1", "qty": 2, "price": "0.01"}},
			"totalPrice": "0.02",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var got domain.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("20.00")),
			"total %s", got.TotalPrice)
		require.Len(t, got.Items, 1)
		assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("empty items is a 400", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(r, http.MethodPost, "/api/orders", userToken, gin.H{"orderItems": []gin.H{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "no order items")
	})

	t.Run("insufficient stock is a 400", func(t *testing.T) {
		r, store := newTestServer(t)
		seedProduct(store, "p1", "Trail Runner", "10.00", 2)
		w := doJSON(r, http.MethodPost, "/api/orders", userToken, gin.H{
			"orderItems": []gin.H{{"productId": "p1", "qty": 3}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "insufficient stock")
	})
}

func TestOrderQueryEndpoints(t *testing.T) {
	r, store := newTestServer(t)
	seedProduct(store, "p1", "Trail Runner", "10.00", 10)

	w := doJSON(r, http.MethodPost, "/api/orders", userToken, gin.H{
		"orderItems": []gin.H{{"productId": "p1", "qty": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var placed domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))

	t.Run("owner fetches own order", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/orders/"+placed.ID, userToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin fetches any order", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/orders/"+placed.ID, adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing order is 404", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/orders/nope", userToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("my-orders lists only mine", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/orders/my-orders", userToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got []domain.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, userEmail, got[0].UserEmail)
	})

	t.Run("all orders is admin only", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/orders", userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(r, http.MethodGet, "/api/orders", adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	r, store := newTestServer(t)
	seedProduct(store, "p1", "Trail Runner", "10.00", 10)

	w := doJSON(r, http.MethodPost, "/api/orders", userToken, gin.H{
		"orderItems": []gin.H{{"productId": "p1", "qty": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var placed domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	statusPath := "/api/orders/" + placed.ID + "/status"

	t.Run("admin only", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, statusPath, userToken, gin.H{"status": "Shipped"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("ships then delivers", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, statusPath, adminToken, gin.H{"status": "Shipped"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(r, http.MethodPut, statusPath, adminToken, gin.H{"status": "Delivered"})
		require.Equal(t, http.StatusOK, w.Code)
		var got domain.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.True(t, got.IsDelivered)
		require.NotNil(t, got.DeliveredAt)
	})

	t.Run("delivered order cannot be cancelled", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, statusPath, adminToken, gin.H{"status": "Cancelled"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cannot transition")
	})
}

func TestProductEndpoints(t *testing.T) {
	t.Run("get product is public", func(t *testing.T) {
		r, store := newTestServer(t)
		seedProduct(store, "p1", "Trail Runner", "10.00", 5)
		w := doJSON(r, http.MethodGet, "/api/products/p1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Trail Runner", got.Name)
	})

	t.Run("missing product is 404", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(r, http.MethodGet, "/api/products/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("create is admin only", func(t *testing.T) {
		r, _ := newTestServer(t)
		body := gin.H{"name": "Trail Runner", "price": "79.99", "countInStock": 3}

		w := doJSON(r, http.MethodPost, "/api/products", userToken, body)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(r, http.MethodPost, "/api/products", adminToken, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var got domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.NotEmpty(t, got.ID)
	})

	t.Run("update and delete", func(t *testing.T) {
		r, store := newTestServer(t)
		seedProduct(store, "p1", "Trail Runner", "10.00", 5)

		w := doJSON(r, http.MethodPut, "/api/products/p1", adminToken,
			gin.H{"name": "Trail Runner v2", "price": "12.00", "countInStock": 9})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doJSON(r, http.MethodDelete, "/api/products/p1", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(r, http.MethodGet, "/api/products/p1", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
