// Package memory keeps repository state in process, guarded by a mutex per collection.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
)

// NewStore returns an empty in-memory store.
func NewStore() *repository.Store {
	return &repository.Store{
		Inventory:       NewInventoryRepository(),
		Orders:          NewOrderRepository(),
		Signals:         NewSignalRepository(),
		Recommendations: NewRecommendationRepository(),
		FoodWaste:       NewFoodWasteRepository(),
		WeatherReadings: NewWeatherReadingRepository(),
		Events:          NewEventRepository(),
		Sales:           NewSaleRepository(),
	}
}

var now = func() time.Time { return time.Now().UTC() }

func cloneItem(i domain.InventoryItem) domain.InventoryItem {
	if i.WeatherSensitivity != nil {
		ws := make(domain.WeatherSensitivity, len(i.WeatherSensitivity))
		for k, v := range i.WeatherSensitivity {
			ws[k] = v
		}
		i.WeatherSensitivity = ws
	}
	if i.UsedIn != nil {
		i.UsedIn = append(domain.StringList(nil), i.UsedIn...)
	}
	return i
}

func cloneSignal(s domain.IntelligenceSignal) domain.IntelligenceSignal {
	if s.Details != nil {
		d := make(domain.JSONMap, len(s.Details))
		for k, v := range s.Details {
			d[k] = v
		}
		s.Details = d
	}
	return s
}

func cloneRecommendation(r domain.Recommendation) domain.Recommendation {
	if r.TriggerSources != nil {
		r.TriggerSources = append(domain.StringList(nil), r.TriggerSources...)
	}
	return r
}

// InventoryRepository is an in-memory repository.InventoryRepository
type InventoryRepository struct {
	mu     sync.RWMutex
	items  []domain.InventoryItem
	nextID int64
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{nextID: 1}
}

func (r *InventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.InventoryItem, len(r.items))
	for i, item := range r.items {
		out[i] = cloneItem(item)
	}
	return out, nil
}

func (r *InventoryRepository) indexOf(itemID string) int {
	for i, item := range r.items {
		if item.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (r *InventoryRepository) Get(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("inventory item %q: %w", itemID, domain.ErrNotFound)
	}
	item := cloneItem(r.items[idx])
	return &item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(item.ItemID) >= 0 {
		return fmt.Errorf("inventory item %q: %w", item.ItemID, domain.ErrConflict)
	}
	ts := now()
	item.ID = r.nextID
	item.CreatedAt = ts
	item.UpdatedAt = ts
	r.nextID++
	r.items = append(r.items, cloneItem(*item))
	return nil
}

func (r *InventoryRepository) Replace(ctx context.Context, item *domain.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(item.ItemID)
	if idx < 0 {
		return fmt.Errorf("inventory item %q: %w", item.ItemID, domain.ErrNotFound)
	}
	item.ID = r.items[idx].ID
	item.CreatedAt = r.items[idx].CreatedAt
	item.UpdatedAt = now()
	r.items[idx] = cloneItem(*item)
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("inventory item %q: %w", itemID, domain.ErrNotFound)
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return nil
}

// OrderRepository is an in-memory repository.OrderRepository
type OrderRepository struct {
	mu     sync.RWMutex
	orders []domain.Order
	nextID int64
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{nextID: 1}
}

func (r *OrderRepository) indexOf(id int64) int {
	for i, o := range r.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Order{}, r.orders...), nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	o := r.orders[idx]
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, *order)
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(order.ID)
	if idx < 0 {
		return fmt.Errorf("order %d: %w", order.ID, domain.ErrNotFound)
	}
	r.orders[idx] = *order
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	r.orders = append(r.orders[:idx], r.orders[idx+1:]...)
	return nil
}

// SignalRepository is an in-memory repository.SignalRepository
type SignalRepository struct {
	mu      sync.RWMutex
	signals []domain.IntelligenceSignal
	nextID  int64
}

func NewSignalRepository() *SignalRepository {
	return &SignalRepository{nextID: 1}
}

func (r *SignalRepository) List(ctx context.Context) ([]domain.IntelligenceSignal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.IntelligenceSignal, len(r.signals))
	for i, s := range r.signals {
		out[i] = cloneSignal(s)
	}
	return out, nil
}

func (r *SignalRepository) Get(ctx context.Context, id int64) (*domain.IntelligenceSignal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.signals {
		if s.ID == id {
			out := cloneSignal(s)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("signal %d: %w", id, domain.ErrNotFound)
}

func (r *SignalRepository) Create(ctx context.Context, signal *domain.IntelligenceSignal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	signal.ID = r.nextID
	signal.CreatedAt = now()
	r.nextID++
	r.signals = append(r.signals, cloneSignal(*signal))
	return nil
}

// RecommendationRepository is an in-memory repository.RecommendationRepository
type RecommendationRepository struct {
	mu     sync.RWMutex
	recs   []domain.Recommendation
	nextID int64
}

func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{nextID: 1}
}

func (r *RecommendationRepository) List(ctx context.Context) ([]domain.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Recommendation, len(r.recs))
	for i, rec := range r.recs {
		out[i] = cloneRecommendation(rec)
	}
	return out, nil
}

func (r *RecommendationRepository) Get(ctx context.Context, id int64) (*domain.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.recs {
		if rec.ID == id {
			out := cloneRecommendation(rec)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("recommendation %d: %w", id, domain.ErrNotFound)
}

func (r *RecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextID
	r.nextID++
	r.recs = append(r.recs, cloneRecommendation(*rec))
	return nil
}

func (r *RecommendationRepository) ReplaceAll(ctx context.Context, recs []domain.Recommendation) ([]domain.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.Recommendation, len(recs))
	for i, rec := range recs {
		rec = cloneRecommendation(rec)
		if rec.ID == 0 {
			rec.ID = r.nextID
			r.nextID++
		}
		next[i] = rec
	}
	r.recs = next

	out := make([]domain.Recommendation, len(next))
	for i, rec := range next {
		out[i] = cloneRecommendation(rec)
	}
	return out, nil
}

var (
	_ repository.InventoryRepository      = (*InventoryRepository)(nil)
	_ repository.OrderRepository          = (*OrderRepository)(nil)
	_ repository.SignalRepository         = (*SignalRepository)(nil)
	_ repository.RecommendationRepository = (*RecommendationRepository)(nil)
)
