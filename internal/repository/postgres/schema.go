package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id                  BIGSERIAL PRIMARY KEY,
		item_id             TEXT NOT NULL UNIQUE,
		sku                 TEXT NOT NULL DEFAULT '',
		name                TEXT NOT NULL,
		category            TEXT NOT NULL DEFAULT '',
		current_stock       DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
		unit                TEXT NOT NULL DEFAULT '',
		daily_usage         DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (daily_usage >= 0),
		cost_per_unit       DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (cost_per_unit >= 0),
		reorder_point       DOUBLE PRECISION,
		par_level           DOUBLE PRECISION,
		threshold_pct       DOUBLE PRECISION,
		supplier            TEXT NOT NULL DEFAULT '',
		weather_sensitivity JSONB,
		used_in             JSONB,
		last_order_date     TIMESTAMPTZ,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                BIGSERIAL PRIMARY KEY,
		item_id           TEXT NOT NULL,
		supplier          TEXT NOT NULL DEFAULT '',
		quantity_ordered  DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit_cost         DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_cost        DOUBLE PRECISION NOT NULL DEFAULT 0,
		order_date        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expected_delivery TIMESTAMPTZ,
		actual_delivery   TIMESTAMPTZ,
		status            TEXT NOT NULL DEFAULT 'pending',
		notes             TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
	`CREATE TABLE IF NOT EXISTS intelligence_signals (
		id                 BIGSERIAL PRIMARY KEY,
		name               TEXT NOT NULL,
		category           TEXT NOT NULL,
		impact_description TEXT NOT NULL DEFAULT '',
		impact_value       DOUBLE PRECISION,
		trend              TEXT NOT NULL DEFAULT '',
		active_date        TIMESTAMPTZ,
		details            JSONB,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE intelligence_signals ADD COLUMN IF NOT EXISTS trend TEXT NOT NULL DEFAULT ''`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id              BIGSERIAL PRIMARY KEY,
		position        INTEGER NOT NULL DEFAULT 0,
		priority        TEXT NOT NULL,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		profit_impact   DOUBLE PRECISION NOT NULL DEFAULT 0,
		confidence      DOUBLE PRECISION NOT NULL DEFAULT 0,
		action_required BOOLEAN NOT NULL DEFAULT FALSE,
		category        TEXT NOT NULL DEFAULT '',
		trigger_sources JSONB
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_position ON recommendations (position, id)`,
	`CREATE TABLE IF NOT EXISTS food_waste (
		id               BIGSERIAL PRIMARY KEY,
		item_id          TEXT NOT NULL,
		waste_date       TIMESTAMPTZ NOT NULL,
		quantity_wasted  DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (quantity_wasted >= 0),
		unit             TEXT NOT NULL DEFAULT '',
		reason           TEXT NOT NULL,
		cost_impact      DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (cost_impact >= 0),
		prevention_notes TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_food_waste_date ON food_waste (waste_date)`,
	`CREATE TABLE IF NOT EXISTS weather_readings (
		id                   BIGSERIAL PRIMARY KEY,
		date                 TIMESTAMPTZ NOT NULL,
		temperature_high     DOUBLE PRECISION NOT NULL,
		temperature_low      DOUBLE PRECISION NOT NULL,
		condition            TEXT NOT NULL,
		precipitation_chance DOUBLE PRECISION NOT NULL DEFAULT 0,
		humidity             DOUBLE PRECISION NOT NULL DEFAULT 0,
		wind_speed           DOUBLE PRECISION NOT NULL DEFAULT 0,
		weather_description  TEXT NOT NULL DEFAULT '',
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_weather_readings_date ON weather_readings (date DESC)`,
	`CREATE TABLE IF NOT EXISTS events (
		id                  BIGSERIAL PRIMARY KEY,
		name                TEXT NOT NULL,
		event_type          TEXT NOT NULL DEFAULT '',
		start_date          TIMESTAMPTZ NOT NULL,
		end_date            TIMESTAMPTZ,
		expected_attendance INTEGER NOT NULL DEFAULT 0,
		location_proximity  TEXT NOT NULL DEFAULT '',
		impact_multiplier   DOUBLE PRECISION NOT NULL DEFAULT 1,
		description         TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start_date ON events (start_date)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id            BIGSERIAL PRIMARY KEY,
		sale_date     TIMESTAMPTZ NOT NULL,
		item_id       TEXT NOT NULL,
		quantity_sold DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit_price    DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_amount  DOUBLE PRECISION NOT NULL DEFAULT 0,
		customer_type TEXT NOT NULL DEFAULT '',
		time_of_day   TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_item_date ON sales (item_id, sale_date DESC)`,
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *DB) error {
	return db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}
