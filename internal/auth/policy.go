package auth

import (
	"fmt"
	"time"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// TokenPurpose states what a token is good for. Access tokens authorize API
// calls; refresh tokens authorize minting a new pair. Never interchangeable.
type TokenPurpose string

const (
	TokenPurposeAccess  TokenPurpose = "access"
	TokenPurposeRefresh TokenPurpose = "refresh"
)

// PolicyKey selects an expiry duration by principal class and token purpose.
type PolicyKey struct {
	Class   domain.PrincipalClass
	Purpose TokenPurpose
}

// ExpiryPolicy maps (class, purpose) to token lifetime. All four entries must
// be present and positive; Validate runs at startup and a failure is fatal.
type ExpiryPolicy map[PolicyKey]time.Duration

// Validate checks the table is fully populated.
func (p ExpiryPolicy) Validate() error {
	required := []PolicyKey{
		{domain.PrincipalClassStaff, TokenPurposeAccess},
		{domain.PrincipalClassStaff, TokenPurposeRefresh},
		{domain.PrincipalClassCustomer, TokenPurposeAccess},
		{domain.PrincipalClassCustomer, TokenPurposeRefresh},
	}
	for _, key := range required {
		ttl, ok := p[key]
		if !ok || ttl <= 0 {
			return fmt.Errorf("%w: missing expiry for class=%s purpose=%s", ErrConfiguration, key.Class, key.Purpose)
		}
	}
	return nil
}
