package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/metrics"
	"github.com/andresuchdata/kopik/backend-go/internal/recommendation"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
	"github.com/andresuchdata/kopik/backend-go/internal/repository/memory"
	"github.com/andresuchdata/kopik/backend-go/internal/seed"
	"github.com/andresuchdata/kopik/backend-go/internal/stock"
	"github.com/andresuchdata/kopik/backend-go/internal/weather"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store           *repository.Store
	cache           *recordingCache
	metrics         *metrics.Metrics
	inventory       *InventoryService
	orders          *OrderService
	signals         *SignalService
	recommendations *RecommendationService
	weather         *WeatherService
	dashboard       *DashboardService
	foodWaste       *FoodWasteService
	readings        *WeatherReadingService
	events          *EventService
	sales           *SaleService
	intelligence    *IntelligenceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, seed.Load(context.Background(), store, seed.Demo(testToday)))

	f := &fixture{store: store, cache: &recordingCache{}, metrics: metrics.New()}
	table := weather.DefaultTable()
	classifier := stock.NewClassifier(stock.Options{})

	f.inventory = NewInventoryService(store.Inventory, classifier, f.cache, f.metrics)
	f.orders = NewOrderService(store.Orders, f.cache)
	f.orders.now = func() time.Time { return testToday }
	f.signals = NewSignalService(store.Signals, f.cache)
	f.recommendations = NewRecommendationService(
		store.Recommendations, f.inventory, store.Signals,
		recommendation.NewDefaultEngine(), table, f.metrics, f.cache,
	)
	f.weather = NewWeatherService(table, store.Inventory)
	f.dashboard = NewDashboardService(f.inventory, f.orders, f.signals, f.recommendations, table, f.cache, f.metrics)

	clock := func() time.Time { return testToday }
	f.foodWaste = NewFoodWasteService(store.FoodWaste)
	f.foodWaste.now = clock
	f.readings = NewWeatherReadingService(store.WeatherReadings)
	f.readings.now = clock
	f.events = NewEventService(store.Events)
	f.events.now = clock
	f.sales = NewSaleService(store.Sales)
	f.sales.now = clock
	f.intelligence = NewIntelligenceService(f.inventory, f.orders, f.foodWaste, f.readings, f.events, f.sales,
		f.recommendations, f.metrics)
	f.intelligence.now = clock
	return f
}

// recordingCache is an in-process dashboard cache that counts invalidations and can
// be told to fail.
type recordingCache struct {
	entries       map[string]*domain.Dashboard
	invalidations int
	fail          bool
}

var errCacheDown = errors.New("cache down")

func (c *recordingCache) Get(ctx context.Context, weather string) (*domain.Dashboard, bool, error) {
	if c.fail {
		return nil, false, errCacheDown
	}
	d, ok := c.entries[weather]
	return d, ok, nil
}

func (c *recordingCache) Set(ctx context.Context, weather string, dashboard *domain.Dashboard) error {
	if c.fail {
		return errCacheDown
	}
	if c.entries == nil {
		c.entries = map[string]*domain.Dashboard{}
	}
	c.entries[weather] = dashboard
	return nil
}

func (c *recordingCache) InvalidateAll(ctx context.Context) error {
	c.invalidations++
	if c.fail {
		return errCacheDown
	}
	c.entries = nil
	return nil
}

func (c *recordingCache) Close() error { return nil }

func ptr(v float64) *float64 { return &v }
