package http

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := translateError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
					if domainErr.HTTPStatus == http.StatusUnauthorized || domainErr.HTTPStatus == http.StatusForbidden {
						metrics.RecordAuthFailure(domainErr.Code)
					}
				}
				errBody := fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}
				if len(domainErr.Details) > 0 {
					errBody["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{"error": errBody})
				err = nil
			}
		}()
		return c.Next()
	}
}

// translateError maps sentinel errors from the auth and business layers to
// the stable wire codes clients switch on. Anything unrecognized falls
// through to the generic converter and presents as an opaque 500.
func translateError(err error) *apperrors.DomainError {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return unauthorized("INVALID_CREDENTIALS", "invalid credentials")
	case errors.Is(err, auth.ErrAccountNotActive), errors.Is(err, auth.ErrPrincipalNotFound):
		// Deleted principals present as not-active so account existence
		// cannot be probed with stale tokens.
		return unauthorized("ACCOUNT_NOT_ACTIVE", "account is not active")
	case errors.Is(err, auth.ErrTokenExpired):
		de := unauthorized("TOKEN_EXPIRED", "access token expired")
		de.Details = map[string]any{"hint": "use the refresh flow to obtain a new token pair"}
		return de
	case errors.Is(err, auth.ErrTokenPurposeMismatch):
		return unauthorized("TOKEN_PURPOSE_MISMATCH", "token not valid for this operation")
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		return unauthorized("INVALID_REFRESH_TOKEN", "refresh token rejected")
	case errors.Is(err, auth.ErrTokenMalformed):
		return unauthorized("TOKEN_MALFORMED", "token rejected")
	case errors.Is(err, auth.ErrUnauthenticated):
		return unauthorized("UNAUTHENTICATED", "authentication required")
	case errors.Is(err, auth.ErrInsufficientRole):
		return domainError("INSUFFICIENT_ROLE", "insufficient role for this operation", http.StatusForbidden)
	case errors.Is(err, service.ErrCouponNotRedeemable):
		return domainError("COUPON_NOT_REDEEMABLE", "coupon cannot be redeemed", http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrEmptyOrder):
		return domainError("EMPTY_ORDER", "order has no lines", http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrProductUnavailable):
		return domainError("PRODUCT_UNAVAILABLE", "product unavailable", http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrInvalidStatusChange):
		return domainError("INVALID_STATUS_CHANGE", "order status change not allowed", http.StatusUnprocessableEntity)
	case errors.Is(err, repository.ErrDuplicate):
		return domainError("CONFLICT", "duplicate record", http.StatusConflict)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apperrors.NewDomainError("BAD_REQUEST", fiberErr.Message, fiberErr.Code, nil)
	}
	return apperrors.ToDomainError(err)
}

func unauthorized(code, message string) *apperrors.DomainError {
	return domainError(code, message, http.StatusUnauthorized)
}

func domainError(code, message string, status int) *apperrors.DomainError {
	return apperrors.NewDomainError(code, message, status, nil)
}
