package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

const recommendationColumns = `id, priority, title, description, profit_impact, confidence,
	action_required, category, trigger_sources`

type recommendationRepository struct {
	db *DB
}

func NewRecommendationRepository(db *DB) *recommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) List(ctx context.Context) ([]domain.Recommendation, error) {
	return listRecommendations(ctx, r.db)
}

func listRecommendations(ctx context.Context, q sqlx.QueryerContext) ([]domain.Recommendation, error) {
	recs := []domain.Recommendation{}
	query := `SELECT ` + recommendationColumns + ` FROM recommendations ORDER BY position, id`
	if err := sqlx.SelectContext(ctx, q, &recs, query); err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

func (r *recommendationRepository) Get(ctx context.Context, id int64) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, &rec, query, id); err != nil {
		return nil, mapError(err, fmt.Sprintf("recommendation %d", id))
	}
	return &rec, nil
}

func (r *recommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	query := `
		INSERT INTO recommendations (
			position, priority, title, description, profit_impact, confidence,
			action_required, category, trigger_sources
		) VALUES (
			(SELECT COALESCE(MAX(position), -1) + 1 FROM recommendations),
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		rec.Priority, rec.Title, rec.Description, rec.ProfitImpact, rec.Confidence,
		rec.ActionRequired, rec.Category, rec.TriggerSources,
	).Scan(&rec.ID)
	return mapError(err, "create recommendation")
}

func (r *recommendationRepository) ReplaceAll(ctx context.Context, recs []domain.Recommendation) ([]domain.Recommendation, error) {
	var stored []domain.Recommendation
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations`); err != nil {
			return fmt.Errorf("failed to clear recommendations: %w", err)
		}

		withID := `
			INSERT INTO recommendations (
				id, position, priority, title, description, profit_impact, confidence,
				action_required, category, trigger_sources
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		withoutID := `
			INSERT INTO recommendations (
				position, priority, title, description, profit_impact, confidence,
				action_required, category, trigger_sources
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		for pos, rec := range recs {
			if rec.ID != 0 {
				_, err := tx.ExecContext(ctx, withID,
					rec.ID, pos, rec.Priority, rec.Title, rec.Description, rec.ProfitImpact,
					rec.Confidence, rec.ActionRequired, rec.Category, rec.TriggerSources,
				)
				if err != nil {
					return mapError(err, fmt.Sprintf("insert recommendation %d", rec.ID))
				}
				continue
			}
			var id int64
			err := tx.QueryRowxContext(ctx, withoutID,
				pos, rec.Priority, rec.Title, rec.Description, rec.ProfitImpact,
				rec.Confidence, rec.ActionRequired, rec.Category, rec.TriggerSources,
			).Scan(&id)
			if err != nil {
				return mapError(err, "insert recommendation")
			}
		}

		var err error
		stored, err = listRecommendations(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}
