package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// StartActivityWorker subscribes an audit handler to every event type and
// persists activity rows. Write failures are logged and swallowed; audit
// logging must never fail the triggering request.
func StartActivityWorker(dispatcher events.Dispatcher, activities repository.ActivityRepository, logger *zap.Logger) {
	if dispatcher == nil || activities == nil {
		return
	}

	handler := func(ctx context.Context, event events.Event) error {
		record := &domain.ActivityRecord{
			ActorClass: event.Actor.Class,
			ActorID:    event.Actor.ID,
			Action:     string(event.Type),
			EntityType: event.EntityType,
			EntityID:   event.EntityID,
			Detail:     event.Detail,
		}
		if err := activities.Create(ctx, record); err != nil {
			logger.Warn("activity record write failed",
				zap.String("action", record.Action),
				zap.Error(err),
			)
		}
		return nil
	}

	for _, eventType := range events.All() {
		dispatcher.Subscribe(eventType, handler)
	}
}
