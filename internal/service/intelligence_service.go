package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/intelligence"
	"github.com/andresuchdata/kopik/backend-go/internal/metrics"
	"github.com/andresuchdata/kopik/backend-go/internal/stock"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// AnalysisResult reports one stored analysis run
type AnalysisResult struct {
	Success         bool      `json:"success"`
	Message         string    `json:"message"`
	Timestamp       time.Time `json:"timestamp"`
	AnalysisCount   int64     `json:"analysis_count"`
	Summary         string    `json:"summary"`
	Alerts          int       `json:"alerts"`
	Recommendations int       `json:"recommendations"`
}

type IntelligenceService struct {
	inventory       *InventoryService
	orders          *OrderService
	waste           *FoodWasteService
	weather         *WeatherReadingService
	events          *EventService
	sales           *SaleService
	recommendations *RecommendationService
	metrics         *metrics.Metrics
	now             func() time.Time
	runs            atomic.Int64
}

func NewIntelligenceService(
	inventory *InventoryService,
	orders *OrderService,
	waste *FoodWasteService,
	weather *WeatherReadingService,
	events *EventService,
	sales *SaleService,
	recommendations *RecommendationService,
	m *metrics.Metrics,
) *IntelligenceService {
	return &IntelligenceService{
		inventory:       inventory,
		orders:          orders,
		waste:           waste,
		weather:         weather,
		events:          events,
		sales:           sales,
		recommendations: recommendations,
		metrics:         m,
		now:             time.Now,
	}
}

// Dashboard runs every analysis pass over the current records without storing anything.
func (s *IntelligenceService) Dashboard(ctx context.Context) (*intelligence.Dashboard, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	findings := intelligence.Analyze(snapshot)
	return intelligence.BuildDashboard(snapshot, findings, s.now().UTC()), nil
}

// Analyze runs every pass and replaces the stored intelligence recommendations with
// the suggested actions.
func (s *IntelligenceService) Analyze(ctx context.Context) (*AnalysisResult, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	findings := intelligence.Analyze(snapshot)

	if _, err := s.recommendations.ReplaceCategory(ctx, intelligence.RecommendationCategory,
		intelligence.Recommendations(findings)); err != nil {
		return nil, err
	}

	count := s.runs.Add(1)
	s.metrics.AnalysisRan()
	summary := intelligence.SummaryText(findings)

	log.Info().
		Int64("run", count).
		Int("alerts", len(findings.Alerts)).
		Int("high_priority", findings.HighPriorityCount()).
		Int("recommendations", len(findings.Solutions)).
		Float64("profit_impact", intelligence.TotalProfitImpact(findings)).
		Msg("intelligence: analysis stored")

	return &AnalysisResult{
		Success:         true,
		Message:         "Analysis completed successfully",
		Timestamp:       s.now().UTC(),
		AnalysisCount:   count,
		Summary:         summary,
		Alerts:          len(findings.Alerts),
		Recommendations: len(findings.Solutions),
	}, nil
}

// snapshot loads each analysis window concurrently.
func (s *IntelligenceService) snapshot(ctx context.Context) (intelligence.Snapshot, error) {
	snap := intelligence.Snapshot{Today: s.now().UTC()}
	var items []domain.InventoryItem

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.inventory.repo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Orders, err = s.orders.Pending(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Waste, err = s.waste.Recent(gctx, DefaultRecentDays)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Weather, err = s.weather.Recent(gctx, DefaultRecentDays)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Events, err = s.events.Upcoming(gctx, DefaultUpcomingDays)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Sales, err = s.sales.Recent(gctx, DefaultRecentDays)
		return err
	})
	g.Go(func() error {
		var err error
		snap.SalesTrend, err = s.sales.Recent(gctx, DefaultItemSaleDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return snap, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	snap.TotalItems = len(items)
	snap.LowStock = stock.BelowReorderPoint(items)
	return snap, nil
}
