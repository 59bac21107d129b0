package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/cache"
	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/metrics"
	"github.com/andresuchdata/kopik/backend-go/internal/stock"
	"github.com/andresuchdata/kopik/backend-go/internal/weather"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxInsightNames caps how many item names an insight lists
const maxInsightNames = 6

type DashboardService struct {
	inventory       *InventoryService
	orders          *OrderService
	signals         *SignalService
	recommendations *RecommendationService
	weather         *weather.Table
	defaultWeather  string
	cache           cache.DashboardCache
	metrics         *metrics.Metrics
}

func NewDashboardService(
	inventory *InventoryService,
	orders *OrderService,
	signals *SignalService,
	recommendations *RecommendationService,
	table *weather.Table,
	cacheImpl cache.DashboardCache,
	m *metrics.Metrics,
) *DashboardService {
	if table == nil {
		table = weather.DefaultTable()
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		inventory:       inventory,
		orders:          orders,
		signals:         signals,
		recommendations: recommendations,
		weather:         table,
		cache:           cacheImpl,
		metrics:         m,
	}
}

// SetDefaultWeather picks the scenario used when a request names none.
func (s *DashboardService) SetDefaultWeather(id string) error {
	scenario, ok := s.weather.Scenario(id)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownScenario, id)
	}
	s.defaultWeather = scenario.ID
	return nil
}

// Get assembles the dashboard for a weather scenario. An empty id selects the
// configured default, or the table's first scenario. Recommendations are a preview
// of an evaluation for that scenario and are not persisted.
func (s *DashboardService) Get(ctx context.Context, weatherID string) (*domain.Dashboard, error) {
	id := strings.ToLower(strings.TrimSpace(weatherID))
	if id == "" {
		id = s.defaultWeather
	}
	if id == "" {
		id = s.weather.Default()
	}
	scenario, ok := s.weather.Scenario(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScenario, weatherID)
	}

	if dashboard, ok, err := s.cache.Get(ctx, scenario.ID); err == nil && ok {
		s.metrics.CacheLookup("hit")
		return dashboard, nil
	} else if err != nil {
		s.metrics.CacheLookup("error")
		log.Warn().Err(err).Str("weather", scenario.ID).Msg("dashboard: cache get failed")
	} else {
		s.metrics.CacheLookup("miss")
	}

	var (
		inventory []domain.ClassifiedItem
		orders    []domain.Order
		signals   []domain.IntelligenceSignal
		recs      []domain.Recommendation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inventory, err = s.inventory.Classified(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.orders.Pending(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		signals, err = s.signals.List(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		recs, err = s.recommendations.Preview(gctx, scenario.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	items := make([]domain.InventoryItem, len(inventory))
	for i, c := range inventory {
		items[i] = c.InventoryItem
	}
	impact, err := s.weather.Report(scenario.ID, items)
	if err != nil {
		return nil, err
	}

	dashboard := &domain.Dashboard{
		Weather:         scenario.ID,
		Overview:        overview(inventory, orders, recs),
		StatusCounts:    stock.CountByStatus(inventory),
		Inventory:       inventory,
		WeatherImpact:   impact,
		Recommendations: recs,
		Signals:         signals,
	}
	dashboard.Insights = insights(dashboard, s.inventory.Classifier().Thresholds())

	if err := s.cache.Set(ctx, scenario.ID, dashboard); err != nil {
		log.Warn().Err(err).Str("weather", scenario.ID).Msg("dashboard: cache set failed")
	}
	return dashboard, nil
}

func overview(inventory []domain.ClassifiedItem, pending []domain.Order, recs []domain.Recommendation) domain.DashboardOverview {
	o := domain.DashboardOverview{
		TotalItems:           len(inventory),
		PendingOrders:        len(pending),
		TotalRecommendations: len(recs),
	}
	for _, item := range inventory {
		if item.LowStock {
			o.LowStockItems++
		}
	}

	orderValue := decimal.Zero
	for _, order := range pending {
		orderValue = orderValue.Add(decimal.NewFromFloat(order.TotalCost))
	}
	o.PendingOrderValue, _ = orderValue.Round(2).Float64()

	profit := decimal.Zero
	for _, r := range recs {
		if r.Priority == domain.PriorityHigh {
			o.HighPriorityCount++
		}
		profit = profit.Add(decimal.NewFromFloat(r.ProfitImpact))
	}
	o.TotalProfitImpact, _ = profit.Round(2).Float64()
	return o
}

func insights(d *domain.Dashboard, thresholds stock.Thresholds) []string {
	out := make([]string, 0, 4)

	low := make([]string, 0)
	for _, item := range d.Inventory {
		if item.LowStock {
			low = append(low, item.Name)
		}
	}
	if len(low) > 0 {
		out = append(out, fmt.Sprintf("%s need%s immediate attention: %s. Contact suppliers now.",
			countNoun(len(low), "item"), verbSuffix(len(low)), joinNames(low)))
	} else {
		out = append(out, "All good: no items are below their low-stock threshold.")
	}

	critical := 0
	for _, c := range d.StatusCounts {
		if c.Status == domain.StatusCritical {
			critical = c.Count
		}
	}
	if critical > 0 {
		out = append(out, fmt.Sprintf("%s will run out within %s days at the current usage rate.",
			countNoun(critical, "item"), decimal.NewFromFloat(thresholds.Critical).String()))
	}

	if n := len(d.WeatherImpact.AffectedItems); n > 0 {
		out = append(out, fmt.Sprintf("%s weather raises demand for %s.",
			d.WeatherImpact.Scenario.Label, countNoun(n, "item")))
	}

	if d.Overview.PendingOrders > 0 {
		out = append(out, fmt.Sprintf("%s awaiting delivery worth $%s.",
			countNoun(d.Overview.PendingOrders, "order"),
			decimal.NewFromFloat(d.Overview.PendingOrderValue).StringFixed(2)))
	}
	return out
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func verbSuffix(n int) string {
	if n == 1 {
		return "s"
	}
	return ""
}

func joinNames(names []string) string {
	if len(names) <= maxInsightNames {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:maxInsightNames], ", ") + "..."
}
