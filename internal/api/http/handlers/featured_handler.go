package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/service"
)

// FeaturedHandler manages the curated storefront list.
type FeaturedHandler struct {
	featured *service.FeaturedService
}

// NewFeaturedHandler constructs handler.
func NewFeaturedHandler(featured *service.FeaturedService) *FeaturedHandler {
	return &FeaturedHandler{featured: featured}
}

// Replace handles PUT /admin/featured. The submitted list replaces the
// current one atomically, order defines storefront position.
func (h *FeaturedHandler) Replace(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)

	var req dto.FeaturedReplaceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.featured.Replace(c.UserContext(), actor, req.ProductIDs); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// List handles GET /admin/featured.
func (h *FeaturedHandler) List(c *fiber.Ctx) error {
	products, err := h.featured.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponses(products)})
}
