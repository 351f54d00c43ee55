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

// CouponsHandler exposes admin coupon management.
type CouponsHandler struct {
	coupons *service.CouponService
}

// NewCouponsHandler constructs handler.
func NewCouponsHandler(coupons *service.CouponService) *CouponsHandler {
	return &CouponsHandler{coupons: coupons}
}

// Create handles POST /admin/coupons.
func (h *CouponsHandler) Create(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)

	var req dto.CouponCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if !req.ValidUntil.After(req.ValidFrom) {
		return apperrors.NewValidationError("valid_until must be after valid_from", nil)
	}

	coupon := &domain.Coupon{
		Code:       req.Code,
		Type:       domain.CouponType(req.Type),
		Value:      req.Value,
		MaxUses:    req.MaxUses,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
		Active:     true,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	created, err := h.coupons.Create(c.UserContext(), actor, coupon)
	if err != nil {
		if err == repository.ErrDuplicate {
			return apperrors.NewConflict("coupon code already in use", nil)
		}
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": couponResponse(created)})
}

// List handles GET /admin/coupons.
func (h *CouponsHandler) List(c *fiber.Ctx) error {
	limit := parseIntQuery(c, "page_size", 50)
	offset := (parseIntQuery(c, "page", 1) - 1) * limit

	coupons, err := h.coupons.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	resp := make([]dto.CouponResponse, 0, len(coupons))
	for i := range coupons {
		resp = append(resp, couponResponse(&coupons[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /admin/coupons/:id.
func (h *CouponsHandler) Get(c *fiber.Ctx) error {
	coupon, err := h.coupons.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": couponResponse(coupon)})
}

// Update handles PUT /admin/coupons/:id.
func (h *CouponsHandler) Update(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)

	coupon, err := h.coupons.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.CouponUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if req.Code != nil {
		coupon.Code = *req.Code
	}
	if req.Type != nil {
		coupon.Type = domain.CouponType(*req.Type)
	}
	if req.Value != nil {
		coupon.Value = *req.Value
	}
	if req.MaxUses != nil {
		coupon.MaxUses = *req.MaxUses
	}
	if req.ValidFrom != nil {
		coupon.ValidFrom = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		coupon.ValidUntil = *req.ValidUntil
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}
	if !coupon.ValidUntil.After(coupon.ValidFrom) {
		return apperrors.NewValidationError("valid_until must be after valid_from", nil)
	}

	updated, err := h.coupons.Update(c.UserContext(), actor, coupon)
	if err != nil {
		if err == repository.ErrDuplicate {
			return apperrors.NewConflict("coupon code already in use", nil)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": couponResponse(updated)})
}

// Delete handles DELETE /admin/coupons/:id.
func (h *CouponsHandler) Delete(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)
	if err := h.coupons.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func couponResponse(coupon *domain.Coupon) dto.CouponResponse {
	return dto.CouponResponse{
		ID:         coupon.ID,
		Code:       coupon.Code,
		Type:       string(coupon.Type),
		Value:      coupon.Value,
		MaxUses:    coupon.MaxUses,
		UseCount:   coupon.UseCount,
		ValidFrom:  coupon.ValidFrom.UTC(),
		ValidUntil: coupon.ValidUntil.UTC(),
		Active:     coupon.Active,
	}
}
