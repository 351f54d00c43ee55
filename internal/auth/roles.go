package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// RoleRequirement is what a route declares it needs from the caller.
type RoleRequirement string

const (
	RequireAnyAuthenticated RoleRequirement = "any_authenticated"
	RequireAdmin            RoleRequirement = "admin"
	RequireSuperAdmin       RoleRequirement = "super_admin"
)

// RequireRole decides whether the principal satisfies the requirement.
// Pure function of its inputs: no I/O, no caching. SUPER_ADMIN satisfies
// both staff requirements, ADMIN only the admin one, and customers never
// satisfy a staff requirement.
func RequireRole(principal *domain.Principal, required RoleRequirement) error {
	if principal == nil {
		return ErrUnauthenticated
	}
	switch required {
	case RequireAnyAuthenticated:
		return nil
	case RequireAdmin:
		if principal.IsStaff() && principal.Role != nil {
			return nil
		}
	case RequireSuperAdmin:
		if principal.IsStaff() && principal.Role != nil && *principal.Role == domain.StaffRoleSuperAdmin {
			return nil
		}
	}
	return ErrInsufficientRole
}

// RequireAuthenticated ensures some principal is present.
func RequireAuthenticated() fiber.Handler {
	return requirementHandler(RequireAnyAuthenticated)
}

// RequireStaffRole gates a route behind a staff role requirement.
func RequireStaffRole(required RoleRequirement) fiber.Handler {
	return requirementHandler(required)
}

// RequireCustomer ensures the caller is a storefront customer.
func RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return ErrUnauthenticated
		}
		if principal.Class != domain.PrincipalClassCustomer {
			return ErrInsufficientRole
		}
		return c.Next()
	}
}

func requirementHandler(required RoleRequirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		if err := RequireRole(principal, required); err != nil {
			return err
		}
		return c.Next()
	}
}
