package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// Claims describes the signed JWT payload. Purpose is embedded in the signed
// payload, never inferred from the receiving endpoint, so a refresh token
// replayed against an access-protected route is rejected by the codec itself.
type Claims struct {
	Purpose TokenPurpose          `json:"purpose"`
	Class   domain.PrincipalClass `json:"class"`
	Role    *domain.StaffRole     `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token string with its expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenPair is what authentication hands back: an access token for API calls
// and a refresh token for minting the next pair.
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}

// TokenCodec issues and verifies signed, purpose-typed tokens. Lifetime is
// looked up per (principal class, purpose) in the expiry policy table.
type TokenCodec struct {
	secret []byte
	alg    jwt.SigningMethod
	policy ExpiryPolicy
	now    func() time.Time
}

// NewTokenCodec validates configuration up front: an empty secret, unknown
// algorithm or incomplete policy table fails here, not per call.
func NewTokenCodec(secret, algorithm string, policy ExpiryPolicy) (*TokenCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: signing secret is not set", ErrConfiguration)
	}
	if algorithm == "" {
		algorithm = "HS256"
	}
	alg := jwt.GetSigningMethod(algorithm)
	if alg == nil {
		return nil, fmt.Errorf("%w: unknown signing algorithm %q", ErrConfiguration, algorithm)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &TokenCodec{
		secret: []byte(secret),
		alg:    alg,
		policy: policy,
		now:    time.Now,
	}, nil
}

// Issue builds and signs a token for the principal. The role claim is carried
// only on staff access tokens, as a fast-path hint for authorization.
func (c *TokenCodec) Issue(principal *domain.Principal, purpose TokenPurpose) (IssuedToken, error) {
	ttl := c.policy[PolicyKey{Class: principal.Class, Purpose: purpose}]
	now := c.now().Truncate(time.Second)
	expiresAt := now.Add(ttl)

	claims := &Claims{
		Purpose: purpose,
		Class:   principal.Class,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if principal.Class == domain.PrincipalClassStaff && purpose == TokenPurposeAccess {
		claims.Role = principal.Role
	}

	signed, err := jwt.NewWithClaims(c.alg, claims).SignedString(c.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks signature and expiry, then the purpose claim. The error kinds
// are distinct because callers respond differently: expired prompts refresh,
// purpose mismatch and malformed are rejected outright.
func (c *TokenCodec) Verify(tokenStr string, expected TokenPurpose) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.alg.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !claims.Class.Valid() || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	if claims.Purpose != expected {
		return nil, ErrTokenPurposeMismatch
	}
	return claims, nil
}
