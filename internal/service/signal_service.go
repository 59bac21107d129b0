package service

import (
	"context"

	"github.com/andresuchdata/kopik/backend-go/internal/cache"
	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/listing"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
)

type SignalService struct {
	repo  repository.SignalRepository
	cache cache.DashboardCache
}

func NewSignalService(repo repository.SignalRepository, cacheImpl cache.DashboardCache) *SignalService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &SignalService{repo: repo, cache: cacheImpl}
}

// List returns the signals in the given category ("" or "All" for every signal),
// each with its trend filled in.
func (s *SignalService) List(ctx context.Context, category string) ([]domain.IntelligenceSignal, error) {
	signals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	signals = listing.FilterBy(signals, listing.CategoryEquals(category, func(sig domain.IntelligenceSignal) string {
		return sig.Category
	}))
	for i := range signals {
		signals[i].Trend = signals[i].DerivedTrend()
	}
	return signals, nil
}

func (s *SignalService) Get(ctx context.Context, id int64) (*domain.IntelligenceSignal, error) {
	signal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	signal.Trend = signal.DerivedTrend()
	return signal, nil
}

func (s *SignalService) Create(ctx context.Context, signal *domain.IntelligenceSignal) (*domain.IntelligenceSignal, error) {
	if err := signal.Validate(); err != nil {
		return nil, err
	}
	signal.Trend = signal.DerivedTrend()
	if err := s.repo.Create(ctx, signal); err != nil {
		return nil, err
	}
	invalidateDashboards(ctx, s.cache, "signal create")
	return signal, nil
}
