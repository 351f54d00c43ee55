package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate indicates a unique constraint violation (email, phone, SKU,
// coupon code).
var ErrDuplicate = errors.New("duplicate record")

// isUniqueViolation reports whether the pg error is a unique constraint hit.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
