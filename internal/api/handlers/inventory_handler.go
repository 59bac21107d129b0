package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func parseInventoryFilter(c *gin.Context) domain.InventoryFilter {
	return domain.InventoryFilter{
		Category:      strings.TrimSpace(c.Query("category")),
		Query:         strings.TrimSpace(c.Query("q")),
		SortField:     strings.ToLower(strings.TrimSpace(c.Query("sort_field"))),
		SortDirection: strings.ToLower(strings.TrimSpace(c.Query("sort_direction"))),
	}
}

func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), parseInventoryFilter(c))
	if err != nil {
		respondError(c, err, "failed to fetch inventory")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.service.LowStock(c.Request.Context(), c.Query("mode"))
	if err != nil {
		respondError(c, err, "failed to fetch low-stock items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		respondError(c, err, "failed to fetch inventory item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var item domain.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "invalid inventory item", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &item)
	if err != nil {
		respondError(c, err, "failed to create inventory item")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *InventoryHandler) Replace(c *gin.Context) {
	var item domain.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "invalid inventory item", err)
		return
	}

	replaced, err := h.service.Replace(c.Request.Context(), c.Param("item_id"), &item)
	if err != nil {
		respondError(c, err, "failed to replace inventory item")
		return
	}
	c.JSON(http.StatusOK, replaced)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("item_id")); err != nil {
		respondError(c, err, "failed to delete inventory item")
		return
	}
	c.Status(http.StatusNoContent)
}
