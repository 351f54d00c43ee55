package auth

import "errors"

// Error kinds returned by the auth core. Callers branch on these with
// errors.Is; the HTTP layer maps them to response codes.
var (
	// ErrInvalidCredentials covers both unknown identifier and secret
	// mismatch so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotActive rejects principals whose status is not ACTIVE.
	ErrAccountNotActive = errors.New("account is not active")

	// ErrPrincipalNotFound means the principal was deleted between token
	// issuance and use. Surfaced identically to ErrAccountNotActive.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrTokenExpired should prompt the caller to use the refresh flow.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed covers structural and signature failures.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenPurposeMismatch rejects a token presented for a purpose it
	// was not issued for, e.g. a refresh token used as an access token.
	ErrTokenPurposeMismatch = errors.New("token purpose mismatch")

	// ErrInvalidRefreshToken wraps any codec failure on the refresh path.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrUnauthenticated means no principal is present where one is required.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInsufficientRole means the principal does not satisfy the route's
	// role requirement.
	ErrInsufficientRole = errors.New("insufficient role")

	// ErrConfiguration marks startup-time misconfiguration (missing secret,
	// unknown algorithm, incomplete expiry policy). Never a per-request error.
	ErrConfiguration = errors.New("auth configuration invalid")
)
