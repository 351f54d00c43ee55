package events

import (
	"time"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffLoggedIn      EventType = "staff_logged_in"
	EventCustomerLoggedIn   EventType = "customer_logged_in"
	EventCustomerRegistered EventType = "customer_registered"
	EventProductCreated     EventType = "product_created"
	EventProductUpdated     EventType = "product_updated"
	EventProductDeleted     EventType = "product_deleted"
	EventCouponCreated      EventType = "coupon_created"
	EventCouponUpdated      EventType = "coupon_updated"
	EventCouponDeleted      EventType = "coupon_deleted"
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventFeaturedUpdated    EventType = "featured_updated"
	EventStaffCreated       EventType = "staff_created"
	EventStaffUpdated       EventType = "staff_updated"
	EventCustomerSuspended  EventType = "customer_suspended"
)

// All lists every event type, for subscribers that want the full stream.
func All() []EventType {
	return []EventType{
		EventStaffLoggedIn,
		EventCustomerLoggedIn,
		EventCustomerRegistered,
		EventProductCreated,
		EventProductUpdated,
		EventProductDeleted,
		EventCouponCreated,
		EventCouponUpdated,
		EventCouponDeleted,
		EventOrderPlaced,
		EventOrderStatusChanged,
		EventFeaturedUpdated,
		EventStaffCreated,
		EventStaffUpdated,
		EventCustomerSuspended,
	}
}

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Class domain.PrincipalClass `json:"class"`
	ID    string                `json:"id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Actor      Actor          `json:"actor"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Detail     map[string]any `json:"detail,omitempty"`
}
