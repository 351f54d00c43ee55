package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// CustomersHandler exposes admin customer management.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// List handles GET /admin/customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	filter := repository.CustomerFilter{
		Limit:  parseIntQuery(c, "page_size", 50),
		Offset: (parseIntQuery(c, "page", 1) - 1) * parseIntQuery(c, "page_size", 50),
	}
	if status := c.Query("status"); status != "" {
		s := domain.PrincipalStatus(status)
		if !s.Valid() {
			return apperrors.NewValidationError("unknown status filter", nil)
		}
		filter.Status = &s
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	customers, err := h.customers.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /admin/customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	customer, err := h.customers.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// SetStatus handles PATCH /admin/customers/:id/status. Suspending a
// customer blocks new logins; outstanding access tokens lapse on expiry.
func (h *CustomersHandler) SetStatus(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)

	var req dto.CustomerStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	customer, err := h.customers.SetStatus(c.UserContext(), actor, c.Params("id"), domain.PrincipalStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}
