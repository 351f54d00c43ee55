package service

import (
	"context"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// ActivityService exposes the audit log to the admin panel.
type ActivityService struct {
	activities repository.ActivityRepository
}

// NewActivityService constructs the service.
func NewActivityService(activities repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

// List pages through audit entries.
func (s *ActivityService) List(ctx context.Context, filter repository.ActivityFilter) ([]domain.ActivityRecord, error) {
	return s.activities.List(ctx, filter)
}
