package handlers

import (
	"net/http"

	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type IntelligenceHandler struct {
	service *service.IntelligenceService
}

func NewIntelligenceHandler(service *service.IntelligenceService) *IntelligenceHandler {
	return &IntelligenceHandler{service: service}
}

func (h *IntelligenceHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "intelligence analysis failed")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *IntelligenceHandler) Analyze(c *gin.Context) {
	result, err := h.service.Analyze(c.Request.Context())
	if err != nil {
		respondError(c, err, "analysis trigger failed")
		return
	}
	c.JSON(http.StatusOK, result)
}
