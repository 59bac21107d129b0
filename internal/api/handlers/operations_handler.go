package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type FoodWasteHandler struct {
	service *service.FoodWasteService
}

func NewFoodWasteHandler(service *service.FoodWasteService) *FoodWasteHandler {
	return &FoodWasteHandler{service: service}
}

func (h *FoodWasteHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch food waste")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *FoodWasteHandler) Recent(c *gin.Context) {
	days, ok := daysQuery(c, service.DefaultRecentDays)
	if !ok {
		return
	}
	rows, err := h.service.Recent(c.Request.Context(), days)
	if err != nil {
		respondError(c, err, "failed to fetch recent food waste")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *FoodWasteHandler) Create(c *gin.Context) {
	var waste domain.FoodWaste
	if err := c.ShouldBindJSON(&waste); err != nil {
		badRequest(c, "invalid food waste entry", err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), &waste)
	if err != nil {
		respondError(c, err, "failed to record food waste")
		return
	}
	c.JSON(http.StatusCreated, created)
}

type WeatherReadingHandler struct {
	service *service.WeatherReadingService
}

func NewWeatherReadingHandler(service *service.WeatherReadingService) *WeatherReadingHandler {
	return &WeatherReadingHandler{service: service}
}

func (h *WeatherReadingHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch weather readings")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *WeatherReadingHandler) Current(c *gin.Context) {
	reading, err := h.service.Current(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch current weather")
		return
	}
	c.JSON(http.StatusOK, reading)
}

func (h *WeatherReadingHandler) Create(c *gin.Context) {
	var reading domain.WeatherReading
	if err := c.ShouldBindJSON(&reading); err != nil {
		badRequest(c, "invalid weather reading", err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), &reading)
	if err != nil {
		respondError(c, err, "failed to record weather reading")
		return
	}
	c.JSON(http.StatusCreated, created)
}

type EventHandler struct {
	service *service.EventService
}

func NewEventHandler(service *service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch events")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Upcoming(c *gin.Context) {
	days, ok := daysQuery(c, service.DefaultUpcomingDays)
	if !ok {
		return
	}
	events, err := h.service.Upcoming(c.Request.Context(), days)
	if err != nil {
		respondError(c, err, "failed to fetch upcoming events")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Create(c *gin.Context) {
	var event domain.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		badRequest(c, "invalid event", err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), &event)
	if err != nil {
		respondError(c, err, "failed to create event")
		return
	}
	c.JSON(http.StatusCreated, created)
}

type SaleHandler struct {
	service *service.SaleService
}

func NewSaleHandler(service *service.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch sales")
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) Recent(c *gin.Context) {
	days, ok := daysQuery(c, service.DefaultRecentDays)
	if !ok {
		return
	}
	sales, err := h.service.Recent(c.Request.Context(), days)
	if err != nil {
		respondError(c, err, "failed to fetch recent sales")
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) ByItem(c *gin.Context) {
	days, ok := daysQuery(c, service.DefaultItemSaleDays)
	if !ok {
		return
	}
	sales, err := h.service.ByItem(c.Request.Context(), strings.TrimSpace(c.Param("item_id")), days)
	if err != nil {
		respondError(c, err, "failed to fetch item sales")
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) Create(c *gin.Context) {
	var sale domain.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		badRequest(c, "invalid sale", err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), &sale)
	if err != nil {
		respondError(c, err, "failed to record sale")
		return
	}
	c.JSON(http.StatusCreated, created)
}
