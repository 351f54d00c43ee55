package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// AuthService is the only component that mints tokens or resolves a token
// into a live principal.
type AuthService struct {
	staff      repository.StaffRepository
	customers  repository.CustomerRepository
	codec      *auth.TokenCodec
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	StaffRepo    repository.StaffRepository
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewAuthService builds the service. The token codec and its expiry policy
// table are constructed here, so a missing secret or TTL entry fails at
// startup rather than on the first request.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	policy := auth.ExpiryPolicy{
		{Class: domain.PrincipalClassStaff, Purpose: auth.TokenPurposeAccess}:     time.Duration(cfg.StaffAccessTTLMinutes) * time.Minute,
		{Class: domain.PrincipalClassStaff, Purpose: auth.TokenPurposeRefresh}:    time.Duration(cfg.StaffRefreshTTLMinutes) * time.Minute,
		{Class: domain.PrincipalClassCustomer, Purpose: auth.TokenPurposeAccess}:  time.Duration(cfg.CustomerAccessTTLMinutes) * time.Minute,
		{Class: domain.PrincipalClassCustomer, Purpose: auth.TokenPurposeRefresh}: time.Duration(cfg.CustomerRefreshTTLMinutes) * time.Minute,
	}
	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm, policy)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		staff:      deps.StaffRepo,
		customers:  deps.CustomerRepo,
		codec:      codec,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
		logger:     deps.Logger,
	}, nil
}

// LoginStaff authenticates an administrative operator by email.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*domain.Principal, auth.TokenPair, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Unknown identifier is indistinguishable from a wrong secret.
			auth.CompareDummy(password)
			return nil, auth.TokenPair{}, auth.ErrInvalidCredentials
		}
		return nil, auth.TokenPair{}, err
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, auth.TokenPair{}, auth.ErrInvalidCredentials
	}
	if staff.Status != domain.PrincipalStatusActive {
		return nil, auth.TokenPair{}, auth.ErrAccountNotActive
	}

	principal := staff.Principal()
	pair, err := s.issuePair(principal)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	s.recordLogin(ctx, principal)
	s.publish(ctx, events.EventStaffLoggedIn, principal, "staff", principal.ID, nil)
	return principal, pair, nil
}

// LoginCustomer authenticates a storefront shopper by phone number.
func (s *AuthService) LoginCustomer(ctx context.Context, phone, password string) (*domain.Principal, auth.TokenPair, error) {
	customer, err := s.customers.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			auth.CompareDummy(password)
			return nil, auth.TokenPair{}, auth.ErrInvalidCredentials
		}
		return nil, auth.TokenPair{}, err
	}
	if err := auth.ComparePassword(customer.PasswordHash, password); err != nil {
		return nil, auth.TokenPair{}, auth.ErrInvalidCredentials
	}
	if customer.Status != domain.PrincipalStatusActive {
		return nil, auth.TokenPair{}, auth.ErrAccountNotActive
	}

	principal := customer.Principal()
	pair, err := s.issuePair(principal)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	s.recordLogin(ctx, principal)
	s.publish(ctx, events.EventCustomerLoggedIn, principal, "customer", principal.ID, nil)
	return principal, pair, nil
}

// RegisterCustomer creates a new storefront account and logs it in.
func (s *AuthService) RegisterCustomer(ctx context.Context, name, phone, password string) (*domain.Principal, auth.TokenPair, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	customer := &domain.Customer{
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		Status:       domain.PrincipalStatusActive,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, auth.TokenPair{}, err
	}

	principal := customer.Principal()
	pair, err := s.issuePair(principal)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	s.publish(ctx, events.EventCustomerRegistered, principal, "customer", principal.ID, nil)
	return principal, pair, nil
}

// Verify resolves an access token into a principal from its claims alone.
// Tokens are only ever issued to active principals, so the claims fast path
// assumes the status held at issuance; routes that cannot tolerate that
// staleness window use VerifyFresh.
func (s *AuthService) Verify(ctx context.Context, accessToken string) (*domain.Principal, error) {
	claims, err := s.codec.Verify(accessToken, auth.TokenPurposeAccess)
	if err != nil {
		return nil, err
	}
	return &domain.Principal{
		ID:     claims.Subject,
		Class:  claims.Class,
		Role:   claims.Role,
		Status: domain.PrincipalStatusActive,
	}, nil
}

// VerifyFresh resolves an access token and re-reads the principal's current
// status and role from the credential store.
func (s *AuthService) VerifyFresh(ctx context.Context, accessToken string) (*domain.Principal, error) {
	claims, err := s.codec.Verify(accessToken, auth.TokenPurposeAccess)
	if err != nil {
		return nil, err
	}
	return s.resolveActive(ctx, claims.Class, claims.Subject)
}

// Refresh rotates a refresh token into a brand-new access/refresh pair. The
// principal is always re-fetched from the store; stale refresh claims are
// never trusted for status or role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.Principal, auth.TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken, auth.TokenPurposeRefresh)
	if err != nil {
		return nil, auth.TokenPair{}, fmt.Errorf("%w: %w", auth.ErrInvalidRefreshToken, err)
	}

	principal, err := s.resolveActive(ctx, claims.Class, claims.Subject)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	pair, err := s.issuePair(principal)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return principal, pair, nil
}

// Logout is stateless at the token level: an outstanding access token stays
// valid until natural expiry. Short access TTLs bound the exposure; the
// request-scoped principal dies with the request.
func (s *AuthService) Logout(_ context.Context, _ *domain.Principal) error {
	return nil
}

// ChangePassword verifies the current password before updating the hash.
func (s *AuthService) ChangePassword(ctx context.Context, principal *domain.Principal, currentPassword, newPassword string) error {
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	switch principal.Class {
	case domain.PrincipalClassStaff:
		staff, err := s.staff.GetByID(ctx, principal.ID)
		if err != nil {
			return err
		}
		if err := auth.ComparePassword(staff.PasswordHash, currentPassword); err != nil {
			return auth.ErrInvalidCredentials
		}
		staff.PasswordHash = hash
		return s.staff.Update(ctx, staff)
	case domain.PrincipalClassCustomer:
		customer, err := s.customers.GetByID(ctx, principal.ID)
		if err != nil {
			return err
		}
		if err := auth.ComparePassword(customer.PasswordHash, currentPassword); err != nil {
			return auth.ErrInvalidCredentials
		}
		customer.PasswordHash = hash
		return s.customers.Update(ctx, customer)
	default:
		return auth.ErrUnauthenticated
	}
}

// resolveActive re-reads the principal from its credential store and rejects
// anything not currently active.
func (s *AuthService) resolveActive(ctx context.Context, class domain.PrincipalClass, id string) (*domain.Principal, error) {
	var principal *domain.Principal

	switch class {
	case domain.PrincipalClassStaff:
		staff, err := s.staff.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, auth.ErrPrincipalNotFound
			}
			return nil, err
		}
		principal = staff.Principal()
	case domain.PrincipalClassCustomer:
		customer, err := s.customers.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, auth.ErrPrincipalNotFound
			}
			return nil, err
		}
		principal = customer.Principal()
	default:
		return nil, auth.ErrPrincipalNotFound
	}

	if principal.Status != domain.PrincipalStatusActive {
		return nil, auth.ErrAccountNotActive
	}
	return principal, nil
}

func (s *AuthService) issuePair(principal *domain.Principal) (auth.TokenPair, error) {
	access, err := s.codec.Issue(principal, auth.TokenPurposeAccess)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refresh, err := s.codec.Issue(principal, auth.TokenPurposeRefresh)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{Access: access, Refresh: refresh}, nil
}

// recordLogin stamps last-authenticated-at. Best-effort: the login already
// succeeded, so a write failure is logged and swallowed.
func (s *AuthService) recordLogin(ctx context.Context, principal *domain.Principal) {
	var err error
	switch principal.Class {
	case domain.PrincipalClassStaff:
		err = s.staff.RecordLogin(ctx, principal.ID)
	case domain.PrincipalClassCustomer:
		err = s.customers.RecordLogin(ctx, principal.ID)
	}
	if err != nil && s.logger != nil {
		s.logger.Warn("last login stamp failed",
			zap.String("class", string(principal.Class)),
			zap.Error(err),
		)
	}
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor *domain.Principal, entityType, entityID string, detail map[string]any) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		Actor:      events.Actor{Class: actor.Class, ID: actor.ID},
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	})
}
