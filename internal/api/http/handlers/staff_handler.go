package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// StaffHandler exposes staff account management. Routes are admin-only;
// SUPER_ADMIN-only operations are enforced inside the service.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staff *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// Create handles POST /admin/staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)

	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	member, err := h.staff.Create(c.UserContext(), actor, service.StaffCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.StaffRole(req.Role),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": staffResponse(member)})
}

// List handles GET /admin/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	filter := repository.StaffFilter{
		Limit:  parseIntQuery(c, "page_size", 50),
		Offset: (parseIntQuery(c, "page", 1) - 1) * parseIntQuery(c, "page_size", 50),
	}
	if role := c.Query("role"); role != "" {
		r := domain.StaffRole(role)
		if !r.Valid() {
			return apperrors.NewValidationError("unknown role filter", nil)
		}
		filter.Role = &r
	}
	if status := c.Query("status"); status != "" {
		s := domain.PrincipalStatus(status)
		if !s.Valid() {
			return apperrors.NewValidationError("unknown status filter", nil)
		}
		filter.Status = &s
	}

	members, err := h.staff.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	resp := make([]dto.StaffResponse, 0, len(members))
	for i := range members {
		resp = append(resp, staffResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /admin/staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	member, err := h.staff.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(member)})
}

// Update handles PATCH /admin/staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)

	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.StaffUpdateInput{Name: req.Name, Email: req.Email}
	if req.Role != nil {
		role := domain.StaffRole(*req.Role)
		input.Role = &role
	}
	if req.Status != nil {
		status := domain.PrincipalStatus(*req.Status)
		input.Status = &status
	}

	member, err := h.staff.Update(c.UserContext(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(member)})
}

func staffResponse(member *domain.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		ID:          member.ID,
		Name:        member.Name,
		Email:       member.Email,
		Role:        string(member.Role),
		Status:      string(member.Status),
		LastLoginAt: member.LastLoginAt,
		CreatedAt:   member.CreatedAt,
	}
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return defaultVal
	}
	return val
}
