package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
)

var (
	// ErrEmptyOrder rejects orders without lines.
	ErrEmptyOrder = errors.New("order has no lines")

	// ErrProductUnavailable rejects lines referencing inactive or missing
	// products or exceeding stock.
	ErrProductUnavailable = errors.New("product unavailable")

	// ErrInvalidStatusChange rejects transitions the order lifecycle does
	// not allow.
	ErrInvalidStatusChange = errors.New("invalid order status change")
)

// OrderService coordinates checkout and order administration.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	coupons    *CouponService
	dispatcher events.Dispatcher
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	Coupons     *CouponService
	Dispatcher  events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		products:   deps.ProductRepo,
		coupons:    deps.Coupons,
		dispatcher: deps.Dispatcher,
	}
}

// OrderLineInput is one requested position at checkout.
type OrderLineInput struct {
	ProductID string
	Quantity  int
}

// Place creates an order for the customer: product names and prices are
// snapshotted at purchase time, the coupon (if any) is redeemed, totals are
// computed server-side.
func (s *OrderService) Place(ctx context.Context, customer *domain.Principal, lines []OrderLineInput, couponCode *string) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrEmptyOrder
		}
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	order := &domain.Order{
		CustomerID: customer.ID,
		Status:     domain.OrderStatusPending,
		Subtotal:   decimal.Zero,
		Discount:   decimal.Zero,
	}
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok || !product.Active || product.Stock < line.Quantity {
			return nil, ErrProductUnavailable
		}
		orderLine := domain.OrderLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		}
		order.Lines = append(order.Lines, orderLine)
		order.Subtotal = order.Subtotal.Add(orderLine.Total())
	}

	if couponCode != nil && *couponCode != "" {
		coupon, discount, err := s.coupons.Redeem(ctx, *couponCode, order.Subtotal)
		if err != nil {
			return nil, err
		}
		order.CouponCode = &coupon.Code
		order.Discount = discount
	}
	order.Total = order.Subtotal.Sub(order.Discount)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderPlaced, customer, order.ID, map[string]any{
		"total": order.Total.String(),
	})
	return order, nil
}

// GetByID fetches one order.
func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListForCustomer pages through the customer's own orders.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID, limit, offset)
}

// List pages through all orders with admin filters.
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, filter)
}

// UpdateStatus moves an order through its lifecycle.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.Principal, id string, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, ErrInvalidStatusChange
	}
	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderStatusChanged, actor, id, map[string]any{
		"from": string(order.Status),
		"to":   string(next),
	})
	order.Status = next
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, actor *domain.Principal, orderID string, detail map[string]any) {
	if s.dispatcher == nil || actor == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		Actor:      events.Actor{Class: actor.Class, ID: actor.ID},
		EntityType: "order",
		EntityID:   orderID,
		Detail:     detail,
	})
}
