// backend-go/internal/repository/repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

// InventoryRepository stores inventory items keyed by item id, in insertion order.
type InventoryRepository interface {
	List(ctx context.Context) ([]domain.InventoryItem, error)
	Get(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	// Create fails with domain.ErrConflict when the item id is taken.
	Create(ctx context.Context, item *domain.InventoryItem) error
	// Replace swaps the whole record; domain.ErrNotFound when absent.
	Replace(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, itemID string) error
}

// OrderRepository stores purchase orders.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int64) error
}

// SignalRepository stores intelligence signals.
type SignalRepository interface {
	List(ctx context.Context) ([]domain.IntelligenceSignal, error)
	Get(ctx context.Context, id int64) (*domain.IntelligenceSignal, error)
	Create(ctx context.Context, signal *domain.IntelligenceSignal) error
}

// RecommendationRepository holds the current recommendation set in display order.
type RecommendationRepository interface {
	List(ctx context.Context) ([]domain.Recommendation, error)
	Get(ctx context.Context, id int64) (*domain.Recommendation, error)
	Create(ctx context.Context, rec *domain.Recommendation) error
	// ReplaceAll swaps the held set for recs, keeping their order. Entries without an
	// id get a fresh one; the stored set is returned.
	ReplaceAll(ctx context.Context, recs []domain.Recommendation) ([]domain.Recommendation, error)
}

// FoodWasteRepository stores food waste entries in insertion order.
type FoodWasteRepository interface {
	List(ctx context.Context) ([]domain.FoodWaste, error)
	Create(ctx context.Context, waste *domain.FoodWaste) error
}

// WeatherReadingRepository stores observed weather, newest date first.
type WeatherReadingRepository interface {
	List(ctx context.Context) ([]domain.WeatherReading, error)
	Create(ctx context.Context, reading *domain.WeatherReading) error
}

// EventRepository stores local events in insertion order.
type EventRepository interface {
	List(ctx context.Context) ([]domain.Event, error)
	Create(ctx context.Context, event *domain.Event) error
}

// SaleRepository stores sales, newest sale date first.
type SaleRepository interface {
	List(ctx context.Context) ([]domain.Sale, error)
	Create(ctx context.Context, sale *domain.Sale) error
}

// Store groups the repositories backing one data source
type Store struct {
	Inventory       InventoryRepository
	Orders          OrderRepository
	Signals         SignalRepository
	Recommendations RecommendationRepository
	FoodWaste       FoodWasteRepository
	WeatherReadings WeatherReadingRepository
	Events          EventRepository
	Sales           SaleRepository
}
