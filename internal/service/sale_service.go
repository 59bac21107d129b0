package service

import (
	"context"
	"strings"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/listing"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
)

type SaleService struct {
	repo repository.SaleRepository
	now  func() time.Time
}

func NewSaleService(repo repository.SaleRepository) *SaleService {
	return &SaleService{repo: repo, now: time.Now}
}

// List returns every sale, newest first.
func (s *SaleService) List(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.List(ctx)
}

func (s *SaleService) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	sale.CustomerType = strings.ToLower(strings.TrimSpace(sale.CustomerType))
	sale.TimeOfDay = strings.ToLower(strings.TrimSpace(sale.TimeOfDay))
	if sale.SaleDate.IsZero() {
		sale.SaleDate = s.now().UTC()
	}
	if err := sale.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Recent returns the sales within the last days days, newest first.
func (s *SaleService) Recent(ctx context.Context, days int) ([]domain.Sale, error) {
	return s.since(ctx, days, nil)
}

// ByItem returns one item's sales within the last days days, newest first.
func (s *SaleService) ByItem(ctx context.Context, itemID string, days int) ([]domain.Sale, error) {
	return s.since(ctx, days, func(sale domain.Sale) bool { return sale.ItemID == itemID })
}

func (s *SaleService) since(ctx context.Context, days int, keep func(domain.Sale) bool) ([]domain.Sale, error) {
	cutoff, err := sinceDays(s.now(), days)
	if err != nil {
		return nil, err
	}
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return listing.FilterBy(sales, func(sale domain.Sale) bool {
		return !sale.SaleDate.Before(cutoff) && (keep == nil || keep(sale))
	}), nil
}
