package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// FeaturedRepository stores the curated storefront feature list.
type FeaturedRepository interface {
	// Replace swaps the full ordered list atomically.
	Replace(ctx context.Context, productIDs []string) error
	List(ctx context.Context) ([]domain.FeaturedItem, error)
}

type featuredRepository struct {
	pool *pgxpool.Pool
}

// NewFeaturedRepository returns a Postgres-backed implementation.
func NewFeaturedRepository(pool *pgxpool.Pool) FeaturedRepository {
	return &featuredRepository{pool: pool}
}

func (r *featuredRepository) Replace(ctx context.Context, productIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM featured_items`); err != nil {
		return err
	}
	for position, productID := range productIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO featured_items (product_id, position) VALUES ($1,$2)`,
			productID, position,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *featuredRepository) List(ctx context.Context) ([]domain.FeaturedItem, error) {
	const query = `
        SELECT id, product_id, position, created_at
        FROM featured_items ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FeaturedItem
	for rows.Next() {
		var item domain.FeaturedItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Position, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
