package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, item_id, supplier, quantity_ordered, unit_cost, total_cost, order_date,
	expected_delivery, actual_delivery, status, notes`

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.db, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, &order, query, id); err != nil {
		return nil, mapError(err, fmt.Sprintf("order %d", id))
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			item_id, supplier, quantity_ordered, unit_cost, total_cost, order_date,
			expected_delivery, actual_delivery, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		order.ItemID, order.Supplier, order.QuantityOrdered, order.UnitCost, order.TotalCost,
		order.OrderDate, order.ExpectedDelivery, order.ActualDelivery, order.Status, order.Notes,
	).Scan(&order.ID)
	return mapError(err, "create order")
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders SET
			item_id = $2, supplier = $3, quantity_ordered = $4, unit_cost = $5, total_cost = $6,
			order_date = $7, expected_delivery = $8, actual_delivery = $9, status = $10, notes = $11
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		order.ID, order.ItemID, order.Supplier, order.QuantityOrdered, order.UnitCost, order.TotalCost,
		order.OrderDate, order.ExpectedDelivery, order.ActualDelivery, order.Status, order.Notes,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("update order %d", order.ID))
	}
	return expectAffected(res, fmt.Sprintf("order %d", order.ID))
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return mapError(err, fmt.Sprintf("delete order %d", id))
	}
	return expectAffected(res, fmt.Sprintf("order %d", id))
}
