package dto

import "time"

// CustomerProfileUpdateRequest payload for profile edits.
type CustomerProfileUpdateRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// CustomerStatusRequest payload for admin suspend/reactivate.
type CustomerStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE SUSPENDED"`
}

// CustomerResponse describes a customer.
type CustomerResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ActivityResponse describes one audit entry.
type ActivityResponse struct {
	ID         string         `json:"id"`
	ActorClass string         `json:"actor_class"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type,omitempty"`
	EntityID   string         `json:"entity_id,omitempty"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
