package handlers

import (
	"net/http"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type SignalHandler struct {
	service *service.SignalService
}

func NewSignalHandler(service *service.SignalService) *SignalHandler {
	return &SignalHandler{service: service}
}

func (h *SignalHandler) List(c *gin.Context) {
	signals, err := h.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err, "failed to fetch intelligence signals")
		return
	}
	c.JSON(http.StatusOK, signals)
}

func (h *SignalHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	signal, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to fetch intelligence signal")
		return
	}
	c.JSON(http.StatusOK, signal)
}

func (h *SignalHandler) Create(c *gin.Context) {
	var signal domain.IntelligenceSignal
	if err := c.ShouldBindJSON(&signal); err != nil {
		badRequest(c, "invalid intelligence signal", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &signal)
	if err != nil {
		respondError(c, err, "failed to create intelligence signal")
		return
	}
	c.JSON(http.StatusCreated, created)
}
