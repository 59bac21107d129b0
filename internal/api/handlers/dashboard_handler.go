package handlers

import (
	"net/http"

	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	weather   *service.WeatherService
	reports   *service.ReportService
}

func NewDashboardHandler(dashboard *service.DashboardService, weather *service.WeatherService, reports *service.ReportService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, weather: weather, reports: reports}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	data, err := h.dashboard.Get(c.Request.Context(), c.Query("weather"))
	if err != nil {
		respondError(c, err, "failed to fetch dashboard")
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *DashboardHandler) Scenarios(c *gin.Context) {
	c.JSON(http.StatusOK, h.weather.Scenarios())
}

func (h *DashboardHandler) ScenarioImpact(c *gin.Context) {
	report, err := h.weather.Impact(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch weather impact")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *DashboardHandler) InventoryReport(c *gin.Context) {
	result, err := h.reports.InventoryReport(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to generate inventory report")
		return
	}
	c.JSON(http.StatusCreated, result)
}
