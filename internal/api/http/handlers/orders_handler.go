package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
)

// OrdersHandler exposes admin order management.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// List handles GET /admin/orders. Supports filtering by customer, status
// and creation window.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		Limit:  parseIntQuery(c, "page_size", 50),
		Offset: (parseIntQuery(c, "page", 1) - 1) * parseIntQuery(c, "page_size", 50),
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.CustomerID = &customerID
	}
	if statuses := c.Query("status"); statuses != "" {
		for _, s := range strings.Split(statuses, ",") {
			filter.Statuses = append(filter.Statuses, domain.OrderStatus(strings.ToUpper(strings.TrimSpace(s))))
		}
	}
	if from := c.Query("created_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "created_from must be RFC3339")
		}
		filter.CreatedFrom = &t
	}
	if to := c.Query("created_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "created_to must be RFC3339")
		}
		filter.CreatedTo = &t
	}

	orders, err := h.orders.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponses(orders)})
}

// Get handles GET /admin/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}

// UpdateStatus handles PATCH /admin/orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)

	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), actor, c.Params("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}
