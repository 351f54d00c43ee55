package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponCreateRequest payload for new coupons.
type CouponCreateRequest struct {
	Code       string          `json:"code" validate:"required,min=3,max=32"`
	Type       string          `json:"type" validate:"required,oneof=PERCENT FIXED"`
	Value      decimal.Decimal `json:"value" validate:"required"`
	MaxUses    int             `json:"max_uses" validate:"gte=0"`
	ValidFrom  time.Time       `json:"valid_from" validate:"required"`
	ValidUntil time.Time       `json:"valid_until" validate:"required"`
	Active     *bool           `json:"active"`
}

// CouponUpdateRequest payload for partial coupon updates.
type CouponUpdateRequest struct {
	Code       *string          `json:"code" validate:"omitempty,min=3,max=32"`
	Type       *string          `json:"type" validate:"omitempty,oneof=PERCENT FIXED"`
	Value      *decimal.Decimal `json:"value"`
	MaxUses    *int             `json:"max_uses" validate:"omitempty,gte=0"`
	ValidFrom  *time.Time       `json:"valid_from"`
	ValidUntil *time.Time       `json:"valid_until"`
	Active     *bool            `json:"active"`
}

// CouponResponse describes a coupon.
type CouponResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	MaxUses    int             `json:"max_uses"`
	UseCount   int             `json:"use_count"`
	ValidFrom  time.Time       `json:"valid_from"`
	ValidUntil time.Time       `json:"valid_until"`
	Active     bool            `json:"active"`
}

// CouponCheckResponse is the storefront answer for a coupon code.
type CouponCheckResponse struct {
	Code  string          `json:"code"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}
