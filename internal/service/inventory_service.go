package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/cache"
	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/listing"
	"github.com/andresuchdata/kopik/backend-go/internal/metrics"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
	"github.com/andresuchdata/kopik/backend-go/internal/stock"
	"github.com/rs/zerolog/log"
)

// Low-stock listing modes
const (
	LowStockByRatio        = "ratio"
	LowStockByReorderPoint = "reorder_point"
)

type InventoryService struct {
	repo       repository.InventoryRepository
	classifier *stock.Classifier
	cache      cache.DashboardCache
	metrics    *metrics.Metrics
}

func NewInventoryService(repo repository.InventoryRepository, classifier *stock.Classifier, cacheImpl cache.DashboardCache, m *metrics.Metrics) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	if classifier == nil {
		classifier = stock.NewClassifier(stock.Options{})
	}
	return &InventoryService{repo: repo, classifier: classifier, cache: cacheImpl, metrics: m}
}

// Classifier returns the classifier used for derived stock fields.
func (s *InventoryService) Classifier() *stock.Classifier {
	return s.classifier
}

// Classified returns every item with derived fields, in stored order.
func (s *InventoryService) Classified(ctx context.Context) ([]domain.ClassifiedItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	classified := s.classifier.ClassifyAll(items)
	s.metrics.SetStatusCounts(stock.CountByStatus(classified))
	return classified, nil
}

// List returns classified inventory filtered by category and text, then sorted.
func (s *InventoryService) List(ctx context.Context, filter domain.InventoryFilter) ([]domain.ClassifiedItem, error) {
	classified, err := s.Classified(ctx)
	if err != nil {
		return nil, err
	}
	return listing.InventoryView(classified, filter), nil
}

func (s *InventoryService) Get(ctx context.Context, itemID string) (*domain.ClassifiedItem, error) {
	item, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	classified := s.classifier.ClassifyAll([]domain.InventoryItem{*item})[0]
	return &classified, nil
}

func (s *InventoryService) Create(ctx context.Context, item *domain.InventoryItem) (*domain.ClassifiedItem, error) {
	item.ItemID = strings.TrimSpace(item.ItemID)
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "inventory create")

	classified := s.classifier.ClassifyAll([]domain.InventoryItem{*item})[0]
	return &classified, nil
}

// Replace swaps the whole record stored under itemID. The path id wins over the body.
func (s *InventoryService) Replace(ctx context.Context, itemID string, item *domain.InventoryItem) (*domain.ClassifiedItem, error) {
	item.ItemID = strings.TrimSpace(itemID)
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "inventory replace")

	classified := s.classifier.ClassifyAll([]domain.InventoryItem{*item})[0]
	return &classified, nil
}

func (s *InventoryService) Delete(ctx context.Context, itemID string) error {
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, "inventory delete")
	return nil
}

// LowStock lists items needing attention, by stock ratio or by reorder point.
func (s *InventoryService) LowStock(ctx context.Context, mode string) ([]domain.ClassifiedItem, error) {
	classified, err := s.Classified(ctx)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", LowStockByRatio:
		return listing.FilterBy(classified, func(i domain.ClassifiedItem) bool { return i.LowStock }), nil
	case LowStockByReorderPoint:
		return listing.FilterBy(classified, func(i domain.ClassifiedItem) bool {
			return stock.AtOrBelowReorderPoint(i.InventoryItem)
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown low-stock mode %q", domain.ErrInvalidInput, mode)
	}
}

func (s *InventoryService) invalidate(ctx context.Context, reason string) {
	invalidateDashboards(ctx, s.cache, reason)
}

// invalidateDashboards drops cached dashboards after a write. Failures are logged only.
func invalidateDashboards(ctx context.Context, c cache.DashboardCache, reason string) {
	if err := c.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Str("reason", reason).Msg("dashboard: cache invalidate failed")
	}
}
