package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/domain"
)

const principalKey = "auth_principal"

// Authenticator resolves a bearer token into a live principal. Implemented
// by service.AuthService; accepted as an interface so the middleware stays a
// thin adapter over the core.
type Authenticator interface {
	// Verify resolves the principal from the token claims alone.
	Verify(ctx context.Context, accessToken string) (*domain.Principal, error)

	// VerifyFresh additionally re-reads the principal from the credential
	// store and re-checks its current status and role.
	VerifyFresh(ctx context.Context, accessToken string) (*domain.Principal, error)
}

// AuthMiddleware validates bearer tokens and stores the resolved principal
// in request-scoped locals. Never process-global: each request carries its
// own principal.
type AuthMiddleware struct {
	auth Authenticator
}

// NewAuthMiddleware constructs middleware over the given authenticator.
func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Handle authenticates from token claims. Used on storefront routes where
// the staleness window of an access token is acceptable.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	return m.handle(c, m.auth.Verify)
}

// HandleFresh authenticates and re-checks the principal against the store.
// Used on admin routes where acting on a deactivated account matters.
func (m *AuthMiddleware) HandleFresh(c *fiber.Ctx) error {
	return m.handle(c, m.auth.VerifyFresh)
}

func (m *AuthMiddleware) handle(c *fiber.Ctx, verify func(context.Context, string) (*domain.Principal, error)) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}
	principal, err := verify(c.UserContext(), token)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrUnauthenticated
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrUnauthenticated
	}
	return parts[1], nil
}

// PrincipalFromContext retrieves the authenticated principal for this request.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
