package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

const signalColumns = `id, name, category, impact_description, impact_value, trend, active_date, details, created_at`

type signalRepository struct {
	db *DB
}

func NewSignalRepository(db *DB) *signalRepository {
	return &signalRepository{db: db}
}

func (r *signalRepository) List(ctx context.Context) ([]domain.IntelligenceSignal, error) {
	signals := []domain.IntelligenceSignal{}
	query := `SELECT ` + signalColumns + ` FROM intelligence_signals ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.db, &signals, query); err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}
	return signals, nil
}

func (r *signalRepository) Get(ctx context.Context, id int64) (*domain.IntelligenceSignal, error) {
	var signal domain.IntelligenceSignal
	query := `SELECT ` + signalColumns + ` FROM intelligence_signals WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, &signal, query, id); err != nil {
		return nil, mapError(err, fmt.Sprintf("signal %d", id))
	}
	return &signal, nil
}

func (r *signalRepository) Create(ctx context.Context, signal *domain.IntelligenceSignal) error {
	query := `
		INSERT INTO intelligence_signals (name, category, impact_description, impact_value, trend, active_date, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		signal.Name, signal.Category, signal.ImpactDescription, signal.ImpactValue,
		signal.Trend, signal.ActiveDate, signal.Details,
	).Scan(&signal.ID, &signal.CreatedAt)
	return mapError(err, "create signal")
}
