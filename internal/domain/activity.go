package domain

import "time"

// ActivityRecord is a persisted audit entry describing who did what.
type ActivityRecord struct {
	ID         string
	ActorClass PrincipalClass
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Detail     map[string]any
	CreatedAt  time.Time
}
