package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item sold on the storefront.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
