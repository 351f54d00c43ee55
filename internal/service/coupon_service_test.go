package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// fakeCouponRepo stores coupons in memory and mimics the conditional use
// increment of the SQL implementation.
type fakeCouponRepo struct {
	byID map[string]*domain.Coupon
}

func newFakeCouponRepo(coupons ...*domain.Coupon) *fakeCouponRepo {
	repo := &fakeCouponRepo{byID: map[string]*domain.Coupon{}}
	for _, c := range coupons {
		copied := *c
		repo.byID[c.ID] = &copied
	}
	return repo
}

func (f *fakeCouponRepo) Create(_ context.Context, coupon *domain.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = "generated-coupon-id"
	}
	copied := *coupon
	f.byID[coupon.ID] = &copied
	return nil
}

func (f *fakeCouponRepo) Update(_ context.Context, coupon *domain.Coupon) error {
	if _, ok := f.byID[coupon.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *coupon
	f.byID[coupon.ID] = &copied
	return nil
}

func (f *fakeCouponRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCouponRepo) GetByID(_ context.Context, id string) (*domain.Coupon, error) {
	coupon, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *coupon
	return &copied, nil
}

func (f *fakeCouponRepo) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	for _, coupon := range f.byID {
		if coupon.Code == code {
			copied := *coupon
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCouponRepo) List(_ context.Context, _, _ int) ([]domain.Coupon, error) {
	out := make([]domain.Coupon, 0, len(f.byID))
	for _, coupon := range f.byID {
		out = append(out, *coupon)
	}
	return out, nil
}

func (f *fakeCouponRepo) IncrementUse(_ context.Context, id string) error {
	coupon, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if coupon.MaxUses > 0 && coupon.UseCount >= coupon.MaxUses {
		return pgx.ErrNoRows
	}
	coupon.UseCount++
	return nil
}

func redeemableCoupon() *domain.Coupon {
	return &domain.Coupon{
		ID:         "coupon-1",
		Code:       "SPRING10",
		Type:       domain.CouponTypePercent,
		Value:      decimal.NewFromInt(10),
		MaxUses:    2,
		ValidFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Active:     true,
	}
}

func newTestCouponService(repo *fakeCouponRepo) *CouponService {
	svc := NewCouponService(repo, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCouponService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("redeemable code", func(t *testing.T) {
		svc := newTestCouponService(newFakeCouponRepo(redeemableCoupon()))
		coupon, err := svc.Check(ctx, "spring10")
		require.NoError(t, err)
		assert.Equal(t, "SPRING10", coupon.Code, "lookup is case-insensitive via uppercasing")
	})

	t.Run("unknown code", func(t *testing.T) {
		svc := newTestCouponService(newFakeCouponRepo())
		_, err := svc.Check(ctx, "NOPE")
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("expired window", func(t *testing.T) {
		coupon := redeemableCoupon()
		coupon.ValidUntil = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		svc := newTestCouponService(newFakeCouponRepo(coupon))

		_, err := svc.Check(ctx, "SPRING10")
		assert.ErrorIs(t, err, ErrCouponNotRedeemable)
	})

	t.Run("inactive", func(t *testing.T) {
		coupon := redeemableCoupon()
		coupon.Active = false
		svc := newTestCouponService(newFakeCouponRepo(coupon))

		_, err := svc.Check(ctx, "SPRING10")
		assert.ErrorIs(t, err, ErrCouponNotRedeemable)
	})
}

func TestCouponService_Redeem(t *testing.T) {
	ctx := context.Background()

	t.Run("computes discount and consumes a use", func(t *testing.T) {
		repo := newFakeCouponRepo(redeemableCoupon())
		svc := newTestCouponService(repo)

		coupon, discount, err := svc.Redeem(ctx, "SPRING10", decimal.RequireFromString("200.00"))
		require.NoError(t, err)
		assert.Equal(t, "SPRING10", coupon.Code)
		assert.True(t, discount.Equal(decimal.NewFromInt(20)), "got %s", discount)
		assert.Equal(t, 1, repo.byID["coupon-1"].UseCount)
	})

	t.Run("exhausted at the increment", func(t *testing.T) {
		coupon := redeemableCoupon()
		repo := newFakeCouponRepo(coupon)
		svc := newTestCouponService(repo)
		subtotal := decimal.NewFromInt(100)

		_, _, err := svc.Redeem(ctx, "SPRING10", subtotal)
		require.NoError(t, err)
		_, _, err = svc.Redeem(ctx, "SPRING10", subtotal)
		require.NoError(t, err)

		_, _, err = svc.Redeem(ctx, "SPRING10", subtotal)
		assert.ErrorIs(t, err, ErrCouponNotRedeemable)
		assert.Equal(t, 2, repo.byID["coupon-1"].UseCount)
	})
}

func TestCouponService_CreateUppercasesCode(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCouponRepo()
	svc := newTestCouponService(repo)

	coupon := redeemableCoupon()
	coupon.ID = ""
	coupon.Code = "  lower10 "
	created, err := svc.Create(ctx, nil, coupon)
	require.NoError(t, err)
	assert.Equal(t, "LOWER10", created.Code)
}
