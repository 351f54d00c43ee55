package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCreateRequest payload for new catalog items.
type ProductCreateRequest struct {
	SKU         string          `json:"sku" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Active      *bool           `json:"active"`
}

// ProductUpdateRequest payload for partial catalog updates.
type ProductUpdateRequest struct {
	SKU         *string          `json:"sku" validate:"omitempty,max=64"`
	Name        *string          `json:"name" validate:"omitempty,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Active      *bool            `json:"active"`
}

// ProductResponse describes a catalog item.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FeaturedReplaceRequest swaps the curated storefront list in one shot.
type FeaturedReplaceRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,max=50,dive,uuid4"`
}
