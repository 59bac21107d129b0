package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
)

// appendLog is an append-only record list with sequential ids.
type appendLog[T any] struct {
	mu     sync.RWMutex
	rows   []T
	nextID int64
	stamp  func(row *T, id int64, at time.Time)
}

func newAppendLog[T any](stamp func(row *T, id int64, at time.Time)) *appendLog[T] {
	return &appendLog[T]{nextID: 1, stamp: stamp}
}

func (l *appendLog[T]) list() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T{}, l.rows...)
}

func (l *appendLog[T]) add(row *T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stamp(row, l.nextID, now())
	l.nextID++
	l.rows = append(l.rows, *row)
}

// newestFirst orders rows by date descending, later ids first on equal dates.
func newestFirst[T any](rows []T, key func(T) (time.Time, int64)) []T {
	sort.SliceStable(rows, func(i, j int) bool {
		di, idi := key(rows[i])
		dj, idj := key(rows[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return idi > idj
	})
	return rows
}

// FoodWasteRepository is an in-memory repository.FoodWasteRepository
type FoodWasteRepository struct {
	log *appendLog[domain.FoodWaste]
}

func NewFoodWasteRepository() *FoodWasteRepository {
	return &FoodWasteRepository{log: newAppendLog(func(w *domain.FoodWaste, id int64, at time.Time) {
		w.ID = id
		w.CreatedAt = at
	})}
}

func (r *FoodWasteRepository) List(ctx context.Context) ([]domain.FoodWaste, error) {
	return r.log.list(), nil
}

func (r *FoodWasteRepository) Create(ctx context.Context, waste *domain.FoodWaste) error {
	r.log.add(waste)
	return nil
}

// WeatherReadingRepository is an in-memory repository.WeatherReadingRepository
type WeatherReadingRepository struct {
	log *appendLog[domain.WeatherReading]
}

func NewWeatherReadingRepository() *WeatherReadingRepository {
	return &WeatherReadingRepository{log: newAppendLog(func(w *domain.WeatherReading, id int64, at time.Time) {
		w.ID = id
		w.CreatedAt = at
	})}
}

func (r *WeatherReadingRepository) List(ctx context.Context) ([]domain.WeatherReading, error) {
	return newestFirst(r.log.list(), func(w domain.WeatherReading) (time.Time, int64) {
		return w.Date, w.ID
	}), nil
}

func (r *WeatherReadingRepository) Create(ctx context.Context, reading *domain.WeatherReading) error {
	r.log.add(reading)
	return nil
}

// EventRepository is an in-memory repository.EventRepository
type EventRepository struct {
	log *appendLog[domain.Event]
}

func NewEventRepository() *EventRepository {
	return &EventRepository{log: newAppendLog(func(e *domain.Event, id int64, at time.Time) {
		e.ID = id
		e.CreatedAt = at
	})}
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	return r.log.list(), nil
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.log.add(event)
	return nil
}

// SaleRepository is an in-memory repository.SaleRepository
type SaleRepository struct {
	log *appendLog[domain.Sale]
}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{log: newAppendLog(func(s *domain.Sale, id int64, at time.Time) {
		s.ID = id
		s.CreatedAt = at
	})}
}

func (r *SaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	return newestFirst(r.log.list(), func(s domain.Sale) (time.Time, int64) {
		return s.SaleDate, s.ID
	}), nil
}

func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	r.log.add(sale)
	return nil
}

var (
	_ repository.FoodWasteRepository      = (*FoodWasteRepository)(nil)
	_ repository.WeatherReadingRepository = (*WeatherReadingRepository)(nil)
	_ repository.EventRepository          = (*EventRepository)(nil)
	_ repository.SaleRepository           = (*SaleRepository)(nil)
)
