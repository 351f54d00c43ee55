package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest is one requested checkout position.
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// OrderCreateRequest payload for checkout.
type OrderCreateRequest struct {
	Lines      []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
	CouponCode *string            `json:"coupon_code" validate:"omitempty,min=3,max=32"`
}

// OrderStatusRequest payload for admin status changes.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PAID SHIPPED DELIVERED CANCELLED"`
}

// OrderLineResponse describes a snapshotted order position.
type OrderLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// OrderResponse describes an order.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Lines      []OrderLineResponse `json:"lines"`
	CouponCode *string             `json:"coupon_code,omitempty"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Discount   decimal.Decimal     `json:"discount"`
	Total      decimal.Decimal     `json:"total"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}
