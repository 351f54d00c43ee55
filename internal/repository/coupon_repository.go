package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// CouponRepository encapsulates coupon persistence.
type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	Update(ctx context.Context, coupon *domain.Coupon) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context, limit, offset int) ([]domain.Coupon, error)
	// IncrementUse bumps the use counter only while it is under the limit;
	// returns pgx.ErrNoRows when the coupon is exhausted.
	IncrementUse(ctx context.Context, id string) error
}

type couponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository returns a Postgres-backed implementation.
func NewCouponRepository(pool *pgxpool.Pool) CouponRepository {
	return &couponRepository{pool: pool}
}

func (r *couponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	const query = `
        INSERT INTO coupons (code, type, value, max_uses, valid_from, valid_until, active_flag)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, use_count, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		coupon.Code,
		coupon.Type,
		coupon.Value,
		coupon.MaxUses,
		coupon.ValidFrom,
		coupon.ValidUntil,
		coupon.Active,
	).Scan(&coupon.ID, &coupon.UseCount, &coupon.CreatedAt, &coupon.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *couponRepository) Update(ctx context.Context, coupon *domain.Coupon) error {
	const query = `
        UPDATE coupons
        SET code=$1, type=$2, value=$3, max_uses=$4, valid_from=$5, valid_until=$6, active_flag=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		coupon.Code,
		coupon.Type,
		coupon.Value,
		coupon.MaxUses,
		coupon.ValidFrom,
		coupon.ValidUntil,
		coupon.Active,
		coupon.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	return r.getBy(ctx, "id", id)
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return r.getBy(ctx, "code", code)
}

func (r *couponRepository) getBy(ctx context.Context, column, value string) (*domain.Coupon, error) {
	query := fmt.Sprintf(`
        SELECT id, code, type, value, max_uses, use_count, valid_from, valid_until, active_flag, created_at, updated_at
        FROM coupons WHERE %s=$1`, column)

	var coupon domain.Coupon
	if err := r.pool.QueryRow(ctx, query, value).Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Type,
		&coupon.Value,
		&coupon.MaxUses,
		&coupon.UseCount,
		&coupon.ValidFrom,
		&coupon.ValidUntil,
		&coupon.Active,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) List(ctx context.Context, limit, offset int) ([]domain.Coupon, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
        SELECT id, code, type, value, max_uses, use_count, valid_from, valid_until, active_flag, created_at, updated_at
        FROM coupons ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Coupon
	for rows.Next() {
		var coupon domain.Coupon
		if err := rows.Scan(
			&coupon.ID,
			&coupon.Code,
			&coupon.Type,
			&coupon.Value,
			&coupon.MaxUses,
			&coupon.UseCount,
			&coupon.ValidFrom,
			&coupon.ValidUntil,
			&coupon.Active,
			&coupon.CreatedAt,
			&coupon.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, coupon)
	}
	return result, rows.Err()
}

func (r *couponRepository) IncrementUse(ctx context.Context, id string) error {
	const query = `
        UPDATE coupons SET use_count = use_count + 1, updated_at=NOW()
        WHERE id=$1 AND (max_uses = 0 OR use_count < max_uses)`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
