package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

const (
	foodWasteColumns = `id, item_id, waste_date, quantity_wasted, unit, reason, cost_impact,
	prevention_notes, created_at`
	weatherReadingColumns = `id, date, temperature_high, temperature_low, condition,
	precipitation_chance, humidity, wind_speed, weather_description, created_at`
	eventColumns = `id, name, event_type, start_date, end_date, expected_attendance,
	location_proximity, impact_multiplier, description, created_at`
	saleColumns = `id, sale_date, item_id, quantity_sold, unit_price, total_amount,
	customer_type, time_of_day, created_at`
)

type foodWasteRepository struct {
	db *DB
}

func NewFoodWasteRepository(db *DB) *foodWasteRepository {
	return &foodWasteRepository{db: db}
}

func (r *foodWasteRepository) List(ctx context.Context) ([]domain.FoodWaste, error) {
	rows := []domain.FoodWaste{}
	query := `SELECT ` + foodWasteColumns + ` FROM food_waste ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list food waste: %w", err)
	}
	return rows, nil
}

func (r *foodWasteRepository) Create(ctx context.Context, waste *domain.FoodWaste) error {
	query := `
		INSERT INTO food_waste (
			item_id, waste_date, quantity_wasted, unit, reason, cost_impact, prevention_notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		waste.ItemID, waste.WasteDate, waste.QuantityWasted, waste.Unit, waste.Reason,
		waste.CostImpact, waste.PreventionNotes,
	).Scan(&waste.ID, &waste.CreatedAt)
	return mapError(err, "create food waste")
}

type weatherReadingRepository struct {
	db *DB
}

func NewWeatherReadingRepository(db *DB) *weatherReadingRepository {
	return &weatherReadingRepository{db: db}
}

func (r *weatherReadingRepository) List(ctx context.Context) ([]domain.WeatherReading, error) {
	rows := []domain.WeatherReading{}
	query := `SELECT ` + weatherReadingColumns + ` FROM weather_readings ORDER BY date DESC, id DESC`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list weather readings: %w", err)
	}
	return rows, nil
}

func (r *weatherReadingRepository) Create(ctx context.Context, reading *domain.WeatherReading) error {
	query := `
		INSERT INTO weather_readings (
			date, temperature_high, temperature_low, condition, precipitation_chance,
			humidity, wind_speed, weather_description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		reading.Date, reading.TemperatureHigh, reading.TemperatureLow, reading.Condition,
		reading.PrecipitationChance, reading.Humidity, reading.WindSpeed, reading.Description,
	).Scan(&reading.ID, &reading.CreatedAt)
	return mapError(err, "create weather reading")
}

type eventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *eventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	rows := []domain.Event{}
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return rows, nil
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (
			name, event_type, start_date, end_date, expected_attendance, location_proximity,
			impact_multiplier, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		event.Name, event.EventType, event.StartDate, event.EndDate, event.ExpectedAttendance,
		event.LocationProximity, event.ImpactMultiplier, event.Description,
	).Scan(&event.ID, &event.CreatedAt)
	return mapError(err, "create event")
}

type saleRepository struct {
	db *DB
}

func NewSaleRepository(db *DB) *saleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	rows := []domain.Sale{}
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC, id DESC`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return rows, nil
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	query := `
		INSERT INTO sales (
			sale_date, item_id, quantity_sold, unit_price, total_amount, customer_type,
			time_of_day, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		sale.SaleDate, sale.ItemID, sale.QuantitySold, sale.UnitPrice, sale.TotalAmount,
		sale.CustomerType, sale.TimeOfDay,
	).Scan(&sale.ID, &sale.CreatedAt)
	return mapError(err, "create sale")
}
