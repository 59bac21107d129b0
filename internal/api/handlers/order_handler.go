package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) List(c *gin.Context) {
	filter := domain.OrderFilter{
		Status:        strings.TrimSpace(c.Query("status")),
		Query:         strings.TrimSpace(c.Query("q")),
		SortField:     strings.ToLower(strings.TrimSpace(c.Query("sort_field"))),
		SortDirection: strings.ToLower(strings.TrimSpace(c.Query("sort_direction"))),
	}

	orders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Pending(c *gin.Context) {
	orders, err := h.service.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch pending orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// createOrderRequest tells an omitted total_cost apart from an explicit zero.
type createOrderRequest struct {
	domain.Order
	TotalCost *float64 `json:"total_cost"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid order", err)
		return
	}

	order := req.Order
	if req.TotalCost != nil {
		order.TotalCost = *req.TotalCost
	} else {
		order.TotalCost = service.OrderTotal(order.QuantityOrdered, order.UnitCost)
	}

	created, err := h.service.Create(c.Request.Context(), &order)
	if err != nil {
		respondError(c, err, "failed to create order")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var order domain.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		badRequest(c, "invalid order", err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &order)
	if err != nil {
		respondError(c, err, "failed to update order")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete order")
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder places a new pending order copying a prior one.
func (h *OrderHandler) Reorder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.service.Reorder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to reorder")
		return
	}
	c.JSON(http.StatusCreated, order)
}
