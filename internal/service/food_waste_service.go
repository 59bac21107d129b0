package service

import (
	"context"
	"strings"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/listing"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
)

type FoodWasteService struct {
	repo repository.FoodWasteRepository
	now  func() time.Time
}

func NewFoodWasteService(repo repository.FoodWasteRepository) *FoodWasteService {
	return &FoodWasteService{repo: repo, now: time.Now}
}

func (s *FoodWasteService) List(ctx context.Context) ([]domain.FoodWaste, error) {
	return s.repo.List(ctx)
}

// Create stores a waste entry. A missing waste date means today.
func (s *FoodWasteService) Create(ctx context.Context, waste *domain.FoodWaste) (*domain.FoodWaste, error) {
	waste.Reason = strings.ToLower(strings.TrimSpace(waste.Reason))
	if waste.WasteDate.IsZero() {
		waste.WasteDate = dayStart(s.now())
	}
	if err := waste.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, waste); err != nil {
		return nil, err
	}
	return waste, nil
}

// Recent returns the entries dated within the last days days, today included.
func (s *FoodWasteService) Recent(ctx context.Context, days int) ([]domain.FoodWaste, error) {
	cutoff, err := sinceDays(s.now(), days)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return listing.FilterBy(rows, func(w domain.FoodWaste) bool {
		return !w.WasteDate.Before(cutoff)
	}), nil
}
