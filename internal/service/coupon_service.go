package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// ErrCouponNotRedeemable rejects inactive, out-of-window or exhausted coupons.
var ErrCouponNotRedeemable = errors.New("coupon not redeemable")

// CouponService coordinates coupon administration and storefront checks.
type CouponService struct {
	coupons    repository.CouponRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewCouponService builds the service.
func NewCouponService(coupons repository.CouponRepository, dispatcher events.Dispatcher) *CouponService {
	return &CouponService{coupons: coupons, dispatcher: dispatcher, now: time.Now}
}

// Create inserts a coupon. Codes are stored uppercase.
func (s *CouponService) Create(ctx context.Context, actor *domain.Principal, coupon *domain.Coupon) (*domain.Coupon, error) {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if err := s.coupons.Create(ctx, coupon); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventCouponCreated, actor, coupon.ID)
	return coupon, nil
}

// Update modifies a coupon.
func (s *CouponService) Update(ctx context.Context, actor *domain.Principal, coupon *domain.Coupon) (*domain.Coupon, error) {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if err := s.coupons.Update(ctx, coupon); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventCouponUpdated, actor, coupon.ID)
	return coupon, nil
}

// Delete removes a coupon.
func (s *CouponService) Delete(ctx context.Context, actor *domain.Principal, id string) error {
	if err := s.coupons.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.EventCouponDeleted, actor, id)
	return nil
}

// GetByID fetches a coupon.
func (s *CouponService) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	return s.coupons.GetByID(ctx, id)
}

// List pages through coupons.
func (s *CouponService) List(ctx context.Context, limit, offset int) ([]domain.Coupon, error) {
	return s.coupons.List(ctx, limit, offset)
}

// Check resolves a storefront coupon code to the coupon if it is currently
// redeemable.
func (s *CouponService) Check(ctx context.Context, code string) (*domain.Coupon, error) {
	coupon, err := s.coupons.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if !coupon.Redeemable(s.now()) {
		return nil, ErrCouponNotRedeemable
	}
	return coupon, nil
}

// Redeem applies the coupon to the subtotal and consumes one use. The use
// increment is conditional in SQL, so a concurrently exhausted coupon is
// caught here rather than oversold.
func (s *CouponService) Redeem(ctx context.Context, code string, subtotal decimal.Decimal) (*domain.Coupon, decimal.Decimal, error) {
	coupon, err := s.Check(ctx, code)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if err := s.coupons.IncrementUse(ctx, coupon.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, ErrCouponNotRedeemable
		}
		return nil, decimal.Zero, err
	}
	return coupon, coupon.Discount(subtotal), nil
}

func (s *CouponService) publish(ctx context.Context, eventType events.EventType, actor *domain.Principal, couponID string) {
	if s.dispatcher == nil || actor == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		Actor:      events.Actor{Class: actor.Class, ID: actor.ID},
		EntityType: "coupon",
		EntityID:   couponID,
	})
}
