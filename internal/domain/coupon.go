package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponType distinguishes percentage from fixed-amount discounts.
type CouponType string

const (
	CouponTypePercent CouponType = "PERCENT"
	CouponTypeFixed   CouponType = "FIXED"
)

// Coupon is a discount code redeemable at checkout.
type Coupon struct {
	ID         string
	Code       string
	Type       CouponType
	Value      decimal.Decimal // percent (0-100) or fixed amount
	MaxUses    int             // 0 means unlimited
	UseCount   int
	ValidFrom  time.Time
	ValidUntil time.Time
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Redeemable reports whether the coupon can be applied at the given time.
func (c *Coupon) Redeemable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	if c.MaxUses > 0 && c.UseCount >= c.MaxUses {
		return false
	}
	return true
}

// Discount computes the amount deducted from the given subtotal.
// The result never exceeds the subtotal.
func (c *Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.Type {
	case CouponTypePercent:
		discount = subtotal.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
	case CouponTypeFixed:
		discount = c.Value
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}
