package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func requestFailingWith(t *testing.T, failure error) (int, errorEnvelope) {
	t.Helper()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/boom", func(*fiber.Ctx) error { return failure })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope
}

func TestErrorMiddleware_AuthSentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, wantStatus: 401, wantCode: "INVALID_CREDENTIALS"},
		{name: "account not active", err: auth.ErrAccountNotActive, wantStatus: 401, wantCode: "ACCOUNT_NOT_ACTIVE"},
		{name: "deleted principal presents as not active", err: auth.ErrPrincipalNotFound, wantStatus: 401, wantCode: "ACCOUNT_NOT_ACTIVE"},
		{name: "token expired", err: auth.ErrTokenExpired, wantStatus: 401, wantCode: "TOKEN_EXPIRED"},
		{name: "token malformed", err: auth.ErrTokenMalformed, wantStatus: 401, wantCode: "TOKEN_MALFORMED"},
		{name: "purpose mismatch", err: auth.ErrTokenPurposeMismatch, wantStatus: 401, wantCode: "TOKEN_PURPOSE_MISMATCH"},
		{name: "invalid refresh token", err: auth.ErrInvalidRefreshToken, wantStatus: 401, wantCode: "INVALID_REFRESH_TOKEN"},
		{name: "unauthenticated", err: auth.ErrUnauthenticated, wantStatus: 401, wantCode: "UNAUTHENTICATED"},
		{name: "insufficient role", err: auth.ErrInsufficientRole, wantStatus: 403, wantCode: "INSUFFICIENT_ROLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := requestFailingWith(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestErrorMiddleware_TokenExpiredHintsRefresh(t *testing.T) {
	_, envelope := requestFailingWith(t, auth.ErrTokenExpired)
	assert.Contains(t, envelope.Error.Details["hint"], "refresh")
}

func TestErrorMiddleware_BusinessErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "coupon not redeemable", err: service.ErrCouponNotRedeemable, wantStatus: 422, wantCode: "COUPON_NOT_REDEEMABLE"},
		{name: "empty order", err: service.ErrEmptyOrder, wantStatus: 422, wantCode: "EMPTY_ORDER"},
		{name: "product unavailable", err: service.ErrProductUnavailable, wantStatus: 422, wantCode: "PRODUCT_UNAVAILABLE"},
		{name: "invalid status change", err: service.ErrInvalidStatusChange, wantStatus: 422, wantCode: "INVALID_STATUS_CHANGE"},
		{name: "duplicate record", err: repository.ErrDuplicate, wantStatus: 409, wantCode: "CONFLICT"},
		{name: "row not found", err: pgx.ErrNoRows, wantStatus: 404, wantCode: "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := requestFailingWith(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestErrorMiddleware_DomainErrorsPassThrough(t *testing.T) {
	status, envelope := requestFailingWith(t, apperrors.NewValidationError("phone must be E.164", map[string]any{"phone": "e164"}))
	assert.Equal(t, 400, status)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
	assert.Equal(t, "phone must be E.164", envelope.Error.Message)
	assert.Equal(t, "e164", envelope.Error.Details["phone"])
}

func TestErrorMiddleware_OpaqueInternalErrors(t *testing.T) {
	status, envelope := requestFailingWith(t, assert.AnError)
	assert.Equal(t, 500, status)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
	assert.Equal(t, "internal server error", envelope.Error.Message)
	assert.NotContains(t, envelope.Error.Message, assert.AnError.Error())
}

func TestErrorMiddleware_RecordsAuthFailureMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	app.Get("/boom", func(*fiber.Ctx) error { return auth.ErrTokenExpired })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	resp.Body.Close()

	failures := metrics.AuthFailures()
	assert.Equal(t, int64(1), failures["TOKEN_EXPIRED"])
}

func TestErrorMiddleware_RecoversPanics(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	app.Get("/panic", func(*fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
