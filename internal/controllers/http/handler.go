package http

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront-api/internal/auth"
	"storefront-api/internal/domain"
	"storefront-api/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	orders   *services.OrderService
	products *services.ProductService
	verifier auth.Verifier
	log      *slog.Logger
}

func NewHandler(orders *services.OrderService, products *services.ProductService, verifier auth.Verifier, log *slog.Logger) *Handler {
	return &Handler{orders: orders, products: products, verifier: verifier, log: log}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "storefront api")
	})

	authed := AuthRequired(h.verifier)
	admin := AdminOnly()

	api := r.Group("/api")
	{
		api.GET("/products/:id", h.GetProduct)
		api.POST("/products", authed, admin, h.CreateProduct)
		api.PUT("/products/:id", authed, admin, h.UpdateProduct)
		api.DELETE("/products/:id", authed, admin, h.DeleteProduct)

		api.POST("/orders", authed, h.CreateOrder)
		api.GET("/orders", authed, admin, h.ListOrders)
		api.GET("/orders/my-orders", authed, h.MyOrders)
		api.GET("/orders/:id", authed, h.GetOrder)
		api.PUT("/orders/:id/status", authed, admin, h.UpdateOrderStatus)
	}
}

func (h *Handler) CreateOrder(c *gin.Context) {
	identity, _ := identityFrom(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	items := make([]services.LineRequest, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		items = append(items, services.LineRequest{ProductID: it.ProductID, Qty: it.Qty})
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), identity.Email, services.PlaceOrderInput{
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	identity, _ := identityFrom(c)
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"), identity.Email, identity.Admin)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) MyOrders(c *gin.Context) {
	identity, _ := identityFrom(c)
	orders, err := h.orders.ListOrdersForUser(c.Request.Context(), identity.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	product, err := h.products.CreateProduct(c.Request.Context(), productInput(req))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	product, err := h.products.UpdateProduct(c.Request.Context(), c.Param("id"), productInput(req))
	if err != nil {
		h.failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.failProduct(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product removed"})
}

func productInput(req ProductRequest) services.ProductInput {
	return services.ProductInput{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		Brand:        req.Brand,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		IsFeatured:   req.IsFeatured,
	}
}

// fail maps the error taxonomy onto HTTP statuses. Precondition failures are
// 400s, matching what the original API reported for them.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindUnauthenticated:
			status = http.StatusUnauthorized
		case domain.KindForbidden:
			status = http.StatusForbidden
		case domain.KindOrderNotFound:
			status = http.StatusNotFound
		case domain.KindPersistenceFailure:
			status = http.StatusInternalServerError
		default:
			status = http.StatusBadRequest
		}
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

// failProduct is fail with one difference: on the product endpoints a
// missing product is a 404, not the 400 the placement workflow reports.
func (h *Handler) failProduct(c *gin.Context, err error) {
	if domain.KindOf(err) == domain.KindProductNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	h.fail(c, err)
}
