package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	service *service.RecommendationService
}

func NewRecommendationHandler(service *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

type evaluateRequest struct {
	Weather string `json:"weather" binding:"required"`
}

func (h *RecommendationHandler) List(c *gin.Context) {
	ranked, _ := strconv.ParseBool(c.DefaultQuery("ranked", "false"))
	filter := domain.RecommendationFilter{
		Priority: strings.TrimSpace(c.Query("priority")),
		Category: strings.TrimSpace(c.Query("category")),
		Ranked:   ranked,
	}

	recs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to fetch recommendations")
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *RecommendationHandler) HighPriority(c *gin.Context) {
	recs, err := h.service.HighPriority(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch recommendations")
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *RecommendationHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to fetch recommendation")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *RecommendationHandler) Create(c *gin.Context) {
	var rec domain.Recommendation
	if err := c.ShouldBindJSON(&rec); err != nil {
		badRequest(c, "invalid recommendation", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, err, "failed to create recommendation")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Evaluate runs the rule engine for the requested weather and returns the new held set.
func (h *RecommendationHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "weather is required", err)
		return
	}

	recs, err := h.service.Evaluate(c.Request.Context(), req.Weather)
	if err != nil {
		respondError(c, err, "failed to evaluate recommendations")
		return
	}
	c.JSON(http.StatusOK, recs)
}
