package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/domain"
)

type stubAuthenticator struct {
	principal  *domain.Principal
	err        error
	lastToken  string
	freshCalls int
}

func (s *stubAuthenticator) Verify(_ context.Context, token string) (*domain.Principal, error) {
	s.lastToken = token
	return s.principal, s.err
}

func (s *stubAuthenticator) VerifyFresh(_ context.Context, token string) (*domain.Principal, error) {
	s.lastToken = token
	s.freshCalls++
	return s.principal, s.err
}

func newMiddlewareApp(stub *stubAuthenticator, fresh bool, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	mw := NewAuthMiddleware(stub)

	handlers := []fiber.Handler{mw.Handle}
	if fresh {
		handlers = []fiber.Handler{mw.HandleFresh}
	}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return ErrUnauthenticated
		}
		return c.SendString(principal.ID)
	})

	app.Get("/protected", handlers...)
	return app
}

func TestAuthMiddleware_Handle(t *testing.T) {
	customer := &domain.Principal{ID: "c1", Class: domain.PrincipalClassCustomer, Status: domain.PrincipalStatusActive}

	t.Run("valid bearer token", func(t *testing.T) {
		stub := &stubAuthenticator{principal: customer}
		app := newMiddlewareApp(stub, false)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "some-token", stub.lastToken)
		assert.Zero(t, stub.freshCalls)
	})

	t.Run("missing header", func(t *testing.T) {
		stub := &stubAuthenticator{principal: customer}
		app := newMiddlewareApp(stub, false)

		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		// No error middleware here, fiber turns the raw error into a 500;
		// the HTTP mapping itself is covered by the transport tests.
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Empty(t, stub.lastToken)
	})

	t.Run("malformed header scheme", func(t *testing.T) {
		stub := &stubAuthenticator{principal: customer}
		app := newMiddlewareApp(stub, false)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Empty(t, stub.lastToken)
	})

	t.Run("rejected token", func(t *testing.T) {
		stub := &stubAuthenticator{err: ErrTokenExpired}
		app := newMiddlewareApp(stub, false)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestAuthMiddleware_HandleFresh(t *testing.T) {
	admin := domain.StaffRoleAdmin
	staff := &domain.Principal{ID: "s1", Class: domain.PrincipalClassStaff, Role: &admin, Status: domain.PrincipalStatusActive}

	stub := &stubAuthenticator{principal: staff}
	app := newMiddlewareApp(stub, true)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer fresh-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, stub.freshCalls)
}

func TestRequireCustomerGate(t *testing.T) {
	t.Run("customer passes", func(t *testing.T) {
		customer := &domain.Principal{ID: "c1", Class: domain.PrincipalClassCustomer}
		app := newMiddlewareApp(&stubAuthenticator{principal: customer}, false, RequireCustomer())

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer t")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("staff is rejected", func(t *testing.T) {
		admin := domain.StaffRoleAdmin
		staff := &domain.Principal{ID: "s1", Class: domain.PrincipalClassStaff, Role: &admin}
		app := newMiddlewareApp(&stubAuthenticator{principal: staff}, false, RequireCustomer())

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer t")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestRequireStaffRoleGate(t *testing.T) {
	admin := domain.StaffRoleAdmin
	staff := &domain.Principal{ID: "s1", Class: domain.PrincipalClassStaff, Role: &admin}

	t.Run("admin passes admin gate", func(t *testing.T) {
		app := newMiddlewareApp(&stubAuthenticator{principal: staff}, true, RequireStaffRole(RequireAdmin))
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer t")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("admin fails super admin gate", func(t *testing.T) {
		app := newMiddlewareApp(&stubAuthenticator{principal: staff}, true, RequireStaffRole(RequireSuperAdmin))
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer t")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
