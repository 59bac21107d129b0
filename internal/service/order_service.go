package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/cache"
	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/listing"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
	"github.com/shopspring/decimal"
)

// reorderLeadDays is how far out a reordered delivery is expected
const reorderLeadDays = 3

type OrderService struct {
	repo  repository.OrderRepository
	cache cache.DashboardCache
	now   func() time.Time
}

func NewOrderService(repo repository.OrderRepository, cacheImpl cache.DashboardCache) *OrderService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &OrderService{repo: repo, cache: cacheImpl, now: time.Now}
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return listing.OrderView(orders, filter), nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *OrderService) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	order.Status = domain.NormalizeOrderStatus(order.Status)
	if order.OrderDate.IsZero() {
		order.OrderDate = s.today()
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	invalidateDashboards(ctx, s.cache, "order create")
	return order, nil
}

// Update replaces the order stored under id.
func (s *OrderService) Update(ctx context.Context, id int64, order *domain.Order) (*domain.Order, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	order.ID = id
	order.Status = domain.NormalizeOrderStatus(order.Status)
	if order.OrderDate.IsZero() {
		order.OrderDate = existing.OrderDate
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	invalidateDashboards(ctx, s.cache, "order update")
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateDashboards(ctx, s.cache, "order delete")
	return nil
}

// Pending returns the orders still awaiting delivery (pending or delayed).
func (s *OrderService) Pending(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return listing.FilterBy(orders, func(o domain.Order) bool {
		return domain.IsOpenOrderStatus(o.Status)
	}), nil
}

// Reorder places a new pending order for the same item, supplier and quantity as order id.
func (s *OrderService) Reorder(ctx context.Context, id int64) (*domain.Order, error) {
	prior, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	today := s.today()
	expected := today.AddDate(0, 0, reorderLeadDays)
	order := &domain.Order{
		ItemID:           prior.ItemID,
		Supplier:         prior.Supplier,
		QuantityOrdered:  prior.QuantityOrdered,
		UnitCost:         prior.UnitCost,
		TotalCost:        OrderTotal(prior.QuantityOrdered, prior.UnitCost),
		OrderDate:        today,
		ExpectedDelivery: &expected,
		Status:           domain.OrderPending,
		Notes:            fmt.Sprintf("Reordered based on prior order #%d", prior.ID),
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	invalidateDashboards(ctx, s.cache, "order reorder")
	return order, nil
}

func (s *OrderService) today() time.Time {
	return dayStart(s.now())
}

// OrderTotal multiplies in decimal and rounds to cents.
func OrderTotal(quantity, unitCost float64) float64 {
	total, _ := decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(unitCost)).
		Round(2).
		Float64()
	return total
}
