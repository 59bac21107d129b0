package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

const inventoryColumns = `id, item_id, sku, name, category, current_stock, unit, daily_usage,
	cost_per_unit, reorder_point, par_level, threshold_pct, supplier, weather_sensitivity,
	used_in, last_order_date, created_at, updated_at`

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items ORDER BY id`

	items := []domain.InventoryItem{}
	if err := sqlx.SelectContext(ctx, r.db, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (r *inventoryRepository) Get(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE item_id = $1`

	var item domain.InventoryItem
	if err := sqlx.GetContext(ctx, r.db, &item, query, itemID); err != nil {
		return nil, mapError(err, fmt.Sprintf("inventory item %q", itemID))
	}
	return &item, nil
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			item_id, sku, name, category, current_stock, unit, daily_usage, cost_per_unit,
			reorder_point, par_level, threshold_pct, supplier, weather_sensitivity, used_in,
			last_order_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		item.ItemID, item.SKU, item.Name, item.Category, item.CurrentStock, item.Unit,
		item.DailyUsage, item.CostPerUnit, item.ReorderPoint, item.ParLevel, item.ThresholdPct,
		item.Supplier, item.WeatherSensitivity, item.UsedIn, item.LastOrderDate,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	return mapError(err, fmt.Sprintf("create inventory item %q", item.ItemID))
}

func (r *inventoryRepository) Replace(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			sku = $2, name = $3, category = $4, current_stock = $5, unit = $6, daily_usage = $7,
			cost_per_unit = $8, reorder_point = $9, par_level = $10, threshold_pct = $11,
			supplier = $12, weather_sensitivity = $13, used_in = $14, last_order_date = $15,
			updated_at = NOW()
		WHERE item_id = $1
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		item.ItemID, item.SKU, item.Name, item.Category, item.CurrentStock, item.Unit,
		item.DailyUsage, item.CostPerUnit, item.ReorderPoint, item.ParLevel, item.ThresholdPct,
		item.Supplier, item.WeatherSensitivity, item.UsedIn, item.LastOrderDate,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	return mapError(err, fmt.Sprintf("replace inventory item %q", item.ItemID))
}

func (r *inventoryRepository) Delete(ctx context.Context, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE item_id = $1`, itemID)
	if err != nil {
		return mapError(err, fmt.Sprintf("delete inventory item %q", itemID))
	}
	return expectAffected(res, fmt.Sprintf("inventory item %q", itemID))
}
