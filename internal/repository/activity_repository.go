package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// ActivityRepository persists audit entries.
type ActivityRepository interface {
	Create(ctx context.Context, record *domain.ActivityRecord) error
	List(ctx context.Context, filter ActivityFilter) ([]domain.ActivityRecord, error)
}

// ActivityFilter defines audit listing parameters.
type ActivityFilter struct {
	ActorClass *domain.PrincipalClass
	ActorID    *string
	Action     *string
	Limit      int
	Offset     int
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, record *domain.ActivityRecord) error {
	detail, err := json.Marshal(record.Detail)
	if err != nil {
		return fmt.Errorf("marshal activity detail: %w", err)
	}

	const query = `
        INSERT INTO activity_log (actor_class, actor_id, action, entity_type, entity_id, detail)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		record.ActorClass,
		record.ActorID,
		record.Action,
		record.EntityType,
		record.EntityID,
		detail,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *activityRepository) List(ctx context.Context, filter ActivityFilter) ([]domain.ActivityRecord, error) {
	query := `
        SELECT id, actor_class, actor_id, action, entity_type, entity_id, detail, created_at
        FROM activity_log`
	args := []any{}
	clauses := []string{}

	if filter.ActorClass != nil {
		args = append(args, *filter.ActorClass)
		clauses = append(clauses, fmt.Sprintf("actor_class=$%d", len(args)))
	}
	if filter.ActorID != nil {
		args = append(args, *filter.ActorID)
		clauses = append(clauses, fmt.Sprintf("actor_id=$%d", len(args)))
	}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		clauses = append(clauses, fmt.Sprintf("action=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY created_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityRecord
	for rows.Next() {
		var record domain.ActivityRecord
		var detail []byte
		if err := rows.Scan(
			&record.ID,
			&record.ActorClass,
			&record.ActorID,
			&record.Action,
			&record.EntityType,
			&record.EntityID,
			&detail,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &record.Detail); err != nil {
				return nil, fmt.Errorf("unmarshal activity detail: %w", err)
			}
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
