package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/andresuchdata/kopik/backend-go/internal/cache"
	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/listing"
	"github.com/andresuchdata/kopik/backend-go/internal/metrics"
	"github.com/andresuchdata/kopik/backend-go/internal/recommendation"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
	"github.com/andresuchdata/kopik/backend-go/internal/weather"
	"github.com/rs/zerolog/log"
)

type RecommendationService struct {
	// mu serializes writers so an evaluation's read-merge-replace cannot drop a
	// concurrent create.
	mu sync.Mutex

	repo      repository.RecommendationRepository
	inventory *InventoryService
	signals   repository.SignalRepository
	engine    *recommendation.Engine
	weather   *weather.Table
	metrics   *metrics.Metrics
	cache     cache.DashboardCache
}

func NewRecommendationService(
	repo repository.RecommendationRepository,
	inventory *InventoryService,
	signals repository.SignalRepository,
	engine *recommendation.Engine,
	table *weather.Table,
	m *metrics.Metrics,
	cacheImpl cache.DashboardCache,
) *RecommendationService {
	if engine == nil {
		engine = recommendation.NewDefaultEngine()
	}
	if table == nil {
		table = weather.DefaultTable()
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &RecommendationService{
		repo:      repo,
		inventory: inventory,
		signals:   signals,
		engine:    engine,
		weather:   table,
		metrics:   m,
		cache:     cacheImpl,
	}
}

// List returns the held set filtered by priority and category. When ranked is set
// the result is in display order, otherwise in held order.
func (s *RecommendationService) List(ctx context.Context, filter domain.RecommendationFilter) ([]domain.Recommendation, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	priority := filter.Priority
	if listing.IsAll(priority) {
		priority = ""
	}
	recs = recommendation.Filter(recs, priority, filter.Category)
	if filter.Ranked {
		recs = recommendation.Ranked(recs)
	}
	return recs, nil
}

func (s *RecommendationService) Get(ctx context.Context, id int64) (*domain.Recommendation, error) {
	return s.repo.Get(ctx, id)
}

func (s *RecommendationService) Create(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error) {
	priority, ok := domain.ParsePriority(string(rec.Priority))
	if !ok {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, rec.Priority)
	}
	rec.Priority = priority
	rec.Category = strings.ToLower(strings.TrimSpace(rec.Category))
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	invalidateDashboards(ctx, s.cache, "recommendation create")
	return rec, nil
}

// HighPriority returns the high-priority entries in held order.
func (s *RecommendationService) HighPriority(ctx context.Context) ([]domain.Recommendation, error) {
	return s.List(ctx, domain.RecommendationFilter{Priority: string(domain.PriorityHigh)})
}

// Evaluate runs the rule engine for a weather scenario over the held inventory and
// signals, then replaces the held set with the merged result.
func (s *RecommendationService) Evaluate(ctx context.Context, weatherID string) ([]domain.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := s.evaluate(ctx, weatherID, true)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.ReplaceAll(ctx, merged)
	if err != nil {
		return nil, err
	}
	invalidateDashboards(ctx, s.cache, "recommendation evaluate")

	log.Info().
		Str("weather", weatherID).
		Int("recommendations", len(stored)).
		Msg("recommendations: evaluated")
	return stored, nil
}

// ReplaceCategory swaps every held entry of category for fresh, keeping the other
// entries in place after the fresh ones.
func (s *RecommendationService) ReplaceCategory(ctx context.Context, category string, fresh []domain.Recommendation) ([]domain.Recommendation, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	for i := range fresh {
		fresh[i].Category = category
		if err := fresh[i].Validate(); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.ReplaceAll(ctx, recommendation.Merge(previous, fresh, []string{category}))
	if err != nil {
		return nil, err
	}
	invalidateDashboards(ctx, s.cache, "recommendation replace "+category)
	return stored, nil
}

// Preview returns what Evaluate would store without touching the held set.
func (s *RecommendationService) Preview(ctx context.Context, weatherID string) ([]domain.Recommendation, error) {
	return s.evaluate(ctx, weatherID, false)
}

func (s *RecommendationService) evaluate(ctx context.Context, weatherID string, record bool) ([]domain.Recommendation, error) {
	scenario, ok := s.weather.Scenario(weatherID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScenario, weatherID)
	}

	inventory, err := s.inventory.Classified(ctx)
	if err != nil {
		return nil, err
	}
	signals, err := s.signals.List(ctx)
	if err != nil {
		return nil, err
	}
	previous, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	fired := s.engine.Fire(recommendation.Input{
		Inventory: inventory,
		Weather:   scenario.ID,
		Signals:   signals,
	})

	fresh := make([]domain.Recommendation, len(fired))
	for i, f := range fired {
		fresh[i] = f.Recommendation
		if record {
			s.metrics.RuleFired(f.Rule)
		}
	}
	if record {
		s.metrics.EvaluationRan()
	}

	reuseIDs(fresh, previous, s.engine)
	return recommendation.Merge(previous, fresh, s.engine.DynamicCategories()), nil
}

// reuseIDs gives a fresh entry the id of the dropped entry it replaces, matched on
// category and title, so repeated evaluations keep stable ids.
func reuseIDs(fresh, previous []domain.Recommendation, engine *recommendation.Engine) {
	ids := make(map[string]int64, len(previous))
	for _, p := range previous {
		if p.ID == 0 || !engine.IsDynamic(p.Category) {
			continue
		}
		key := strings.ToLower(p.Category) + "\x00" + strings.ToLower(p.Title)
		if _, taken := ids[key]; !taken {
			ids[key] = p.ID
		}
	}
	for i := range fresh {
		key := strings.ToLower(fresh[i].Category) + "\x00" + strings.ToLower(fresh[i].Title)
		if id, ok := ids[key]; ok {
			fresh[i].ID = id
			delete(ids, key)
		}
	}
}
