package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// ActivityHandler exposes the audit trail to admins.
type ActivityHandler struct {
	activities *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activities *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// List handles GET /admin/activity.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	filter := repository.ActivityFilter{
		Limit:  parseIntQuery(c, "page_size", 50),
		Offset: (parseIntQuery(c, "page", 1) - 1) * parseIntQuery(c, "page_size", 50),
	}
	if class := c.Query("actor_class"); class != "" {
		pc := domain.PrincipalClass(class)
		if !pc.Valid() {
			return apperrors.NewValidationError("unknown actor_class filter", nil)
		}
		filter.ActorClass = &pc
	}
	if actorID := c.Query("actor_id"); actorID != "" {
		filter.ActorID = &actorID
	}
	if action := c.Query("action"); action != "" {
		filter.Action = &action
	}

	records, err := h.activities.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	resp := make([]dto.ActivityResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, dto.ActivityResponse{
			ID:         record.ID,
			ActorClass: string(record.ActorClass),
			ActorID:    record.ActorID,
			Action:     record.Action,
			EntityType: record.EntityType,
			EntityID:   record.EntityID,
			Detail:     record.Detail,
			CreatedAt:  record.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}
