package service

import (
	"context"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
	"github.com/andresuchdata/kopik/backend-go/internal/weather"
)

type WeatherService struct {
	table     *weather.Table
	inventory repository.InventoryRepository
}

func NewWeatherService(table *weather.Table, inventory repository.InventoryRepository) *WeatherService {
	if table == nil {
		table = weather.DefaultTable()
	}
	return &WeatherService{table: table, inventory: inventory}
}

// Table returns the scenario table in use.
func (s *WeatherService) Table() *weather.Table {
	return s.table
}

func (s *WeatherService) Scenarios() []domain.WeatherScenario {
	return s.table.Scenarios()
}

// Impact returns the scenario's impact table and the held items it affects.
func (s *WeatherService) Impact(ctx context.Context, id string) (*domain.WeatherImpactReport, error) {
	if !s.table.Has(id) {
		_, err := s.table.Report(id, nil)
		return nil, err
	}
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.table.Report(id, items)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
