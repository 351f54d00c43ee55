package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/service"
)

// AuthHandler exposes login, registration, refresh and logout endpoints for
// both principal classes.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// StaffLogin handles POST /auth/staff/login.
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	principal, pair, err := h.auth.LoginStaff(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authEnvelope(principal, pair))
}

// CustomerLogin handles POST /auth/customers/login.
func (h *AuthHandler) CustomerLogin(c *fiber.Ctx) error {
	var req dto.CustomerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	principal, pair, err := h.auth.LoginCustomer(c.UserContext(), req.Phone, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authEnvelope(principal, pair))
}

// CustomerRegister handles POST /auth/customers/register.
func (h *AuthHandler) CustomerRegister(c *fiber.Ctx) error {
	var req dto.CustomerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	principal, pair, err := h.auth.RegisterCustomer(c.UserContext(), req.Name, req.Phone, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(authEnvelope(principal, pair))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	principal, pair, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(authEnvelope(principal, pair))
}

// Logout handles POST /auth/logout. Stateless: the outstanding access token
// remains valid until expiry; clients drop their copies.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if err := h.auth.Logout(c.UserContext(), principal); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged_out"}})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ErrUnauthenticated
	}
	return c.JSON(fiber.Map{"data": principalResponse(principal)})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ErrUnauthenticated
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.UserContext(), principal, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}

func authEnvelope(principal *domain.Principal, pair auth.TokenPair) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			"principal": principalResponse(principal),
			"auth": dto.AuthResponse{
				Access:  dto.TokenResponse{Token: pair.Access.Value, ExpiresAt: pair.Access.ExpiresAt},
				Refresh: dto.TokenResponse{Token: pair.Refresh.Value, ExpiresAt: pair.Refresh.ExpiresAt},
			},
		},
	}
}

func principalResponse(principal *domain.Principal) dto.PrincipalResponse {
	resp := dto.PrincipalResponse{
		ID:    principal.ID,
		Class: string(principal.Class),
		Name:  principal.Name,
	}
	if principal.Role != nil {
		role := string(*principal.Role)
		resp.Role = &role
	}
	return resp
}
