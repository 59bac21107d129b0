package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/listing"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
)

// WeatherReadingService records observed weather. It is separate from the static
// scenario table that drives the rule engine.
type WeatherReadingService struct {
	repo repository.WeatherReadingRepository
	now  func() time.Time
}

func NewWeatherReadingService(repo repository.WeatherReadingRepository) *WeatherReadingService {
	return &WeatherReadingService{repo: repo, now: time.Now}
}

// List returns every reading, newest date first.
func (s *WeatherReadingService) List(ctx context.Context) ([]domain.WeatherReading, error) {
	return s.repo.List(ctx)
}

func (s *WeatherReadingService) Create(ctx context.Context, reading *domain.WeatherReading) (*domain.WeatherReading, error) {
	reading.Condition = strings.ToLower(strings.TrimSpace(reading.Condition))
	if err := reading.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

// Current returns the reading with the latest date.
func (s *WeatherReadingService) Current(ctx context.Context) (*domain.WeatherReading, error) {
	readings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, fmt.Errorf("no weather data found: %w", domain.ErrNotFound)
	}
	return &readings[0], nil
}

// Recent returns the readings dated within the last days days, newest first.
func (s *WeatherReadingService) Recent(ctx context.Context, days int) ([]domain.WeatherReading, error) {
	cutoff, err := sinceDays(s.now(), days)
	if err != nil {
		return nil, err
	}
	readings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return listing.FilterBy(readings, func(w domain.WeatherReading) bool {
		return !w.Date.Before(cutoff)
	}), nil
}
