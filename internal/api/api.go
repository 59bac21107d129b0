package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/api/handlers"
	"github.com/andresuchdata/kopik/backend-go/internal/api/middleware"
	"github.com/andresuchdata/kopik/backend-go/internal/metrics"
	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Inventory       *service.InventoryService
	Orders          *service.OrderService
	Signals         *service.SignalService
	Recommendations *service.RecommendationService
	Weather         *service.WeatherService
	Dashboard       *service.DashboardService
	Reports         *service.ReportService
	Imports         *service.ImportService
	FoodWaste       *service.FoodWasteService
	WeatherReadings *service.WeatherReadingService
	Events          *service.EventService
	Sales           *service.SaleService
	Intelligence    *service.IntelligenceService
}

func NewRouter(services *Services, m *metrics.Metrics, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(m))
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	apiGroup := router.Group("/api/v1")
	if services == nil {
		return router
	}

	if services.Inventory != nil {
		h := handlers.NewInventoryHandler(services.Inventory)
		group := apiGroup.Group("/inventory-items")
		{
			group.GET("", h.List)
			group.POST("", h.Create)
			group.GET("/low-stock", h.LowStock)
			group.GET("/:item_id", h.Get)
			group.PUT("/:item_id", h.Replace)
			group.DELETE("/:item_id", h.Delete)
		}
	}

	if services.Orders != nil {
		h := handlers.NewOrderHandler(services.Orders)
		group := apiGroup.Group("/orders")
		{
			group.GET("", h.List)
			group.POST("", h.Create)
			group.GET("/pending", h.Pending)
			group.GET("/:id", h.Get)
			group.PUT("/:id", h.Update)
			group.DELETE("/:id", h.Delete)
			group.POST("/:id/reorder", h.Reorder)
		}
	}

	if services.Signals != nil {
		h := handlers.NewSignalHandler(services.Signals)
		group := apiGroup.Group("/intelligence-signals")
		{
			group.GET("", h.List)
			group.POST("", h.Create)
			group.GET("/:id", h.Get)
		}
	}

	if services.Recommendations != nil {
		h := handlers.NewRecommendationHandler(services.Recommendations)
		group := apiGroup.Group("/recommendations")
		{
			group.GET("", h.List)
			group.POST("", h.Create)
			group.GET("/high-priority", h.HighPriority)
			group.POST("/evaluate", h.Evaluate)
			group.GET("/:id", h.Get)
		}
	}

	if services.Dashboard != nil && services.Weather != nil && services.Reports != nil {
		h := handlers.NewDashboardHandler(services.Dashboard, services.Weather, services.Reports)
		apiGroup.GET("/dashboard", h.GetDashboard)
		apiGroup.GET("/weather/scenarios", h.Scenarios)
		apiGroup.GET("/weather/scenarios/:id/impact", h.ScenarioImpact)
		apiGroup.POST("/reports/inventory", h.InventoryReport)
	}

	if services.Imports != nil {
		h := handlers.NewImportHandler(services.Imports)
		apiGroup.POST("/imports/inventory", h.ImportInventory)
	}

	if services.FoodWaste != nil {
		h := handlers.NewFoodWasteHandler(services.FoodWaste)
		group := apiGroup.Group("/food-waste")
		{
			group.GET("", h.List)
			group.POST("", h.Create)
			group.GET("/recent", h.Recent)
		}
	}

	if services.WeatherReadings != nil {
		h := handlers.NewWeatherReadingHandler(services.WeatherReadings)
		apiGroup.GET("/weather/readings", h.List)
		apiGroup.POST("/weather/readings", h.Create)
		apiGroup.GET("/weather/current", h.Current)
	}

	if services.Events != nil {
		h := handlers.NewEventHandler(services.Events)
		group := apiGroup.Group("/events")
		{
			group.GET("", h.List)
			group.POST("", h.Create)
			group.GET("/upcoming", h.Upcoming)
		}
	}

	if services.Sales != nil {
		h := handlers.NewSaleHandler(services.Sales)
		group := apiGroup.Group("/sales")
		{
			group.GET("", h.List)
			group.POST("", h.Create)
			group.GET("/recent", h.Recent)
			group.GET("/by-item/:item_id", h.ByItem)
		}
	}

	if services.Intelligence != nil {
		h := handlers.NewIntelligenceHandler(services.Intelligence)
		apiGroup.GET("/intelligence/dashboard", h.Dashboard)
		apiGroup.POST("/intelligence/analyze", h.Analyze)
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		return cfg
	}

	normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
	if allowAll {
		cfg.AllowOrigins = nil
		cfg.AllowOriginFunc = func(origin string) bool { return true }
	} else if len(normalized) > 0 {
		cfg.AllowOrigins = normalized
	}
	return cfg
}

// normalizeAllowedOrigins splits comma-separated entries. A "*" entry allows every origin.
func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			switch trimmed {
			case "":
				continue
			case "*":
				allowAll = true
			default:
				parsed = append(parsed, trimmed)
			}
		}
	}
	return parsed, allowAll
}
