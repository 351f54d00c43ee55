package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validCoupon() Coupon {
	return Coupon{
		ID:         "coupon-1",
		Code:       "SPRING10",
		Type:       CouponTypePercent,
		Value:      decimal.NewFromInt(10),
		MaxUses:    100,
		UseCount:   0,
		ValidFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Active:     true,
	}
}

func TestCoupon_Redeemable(t *testing.T) {
	inWindow := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*Coupon)
		at     time.Time
		want   bool
	}{
		{name: "valid", mutate: func(*Coupon) {}, at: inWindow, want: true},
		{name: "inactive", mutate: func(c *Coupon) { c.Active = false }, at: inWindow, want: false},
		{name: "before window", mutate: func(*Coupon) {}, at: time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC), want: false},
		{name: "after window", mutate: func(*Coupon) {}, at: time.Date(2025, 4, 1, 0, 0, 1, 0, time.UTC), want: false},
		{name: "exhausted", mutate: func(c *Coupon) { c.UseCount = 100 }, at: inWindow, want: false},
		{name: "unlimited uses", mutate: func(c *Coupon) { c.MaxUses = 0; c.UseCount = 100000 }, at: inWindow, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := validCoupon()
			tt.mutate(&coupon)
			assert.Equal(t, tt.want, coupon.Redeemable(tt.at))
		})
	}
}

func TestCoupon_Discount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   Coupon
		subtotal string
		want     string
	}{
		{
			name:     "percent",
			coupon:   Coupon{Type: CouponTypePercent, Value: decimal.NewFromInt(10)},
			subtotal: "200.00",
			want:     "20",
		},
		{
			name:     "percent rounds to cents",
			coupon:   Coupon{Type: CouponTypePercent, Value: decimal.NewFromInt(15)},
			subtotal: "19.99",
			want:     "3",
		},
		{
			name:     "fixed",
			coupon:   Coupon{Type: CouponTypeFixed, Value: decimal.NewFromInt(5)},
			subtotal: "200.00",
			want:     "5",
		},
		{
			name:     "fixed capped at subtotal",
			coupon:   Coupon{Type: CouponTypeFixed, Value: decimal.NewFromInt(50)},
			subtotal: "30.00",
			want:     "30",
		},
		{
			name:     "full percent discount",
			coupon:   Coupon{Type: CouponTypePercent, Value: decimal.NewFromInt(100)},
			subtotal: "42.00",
			want:     "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal := decimal.RequireFromString(tt.subtotal)
			got := tt.coupon.Discount(subtotal)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}
