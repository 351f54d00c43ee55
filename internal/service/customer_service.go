package service

import (
	"context"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// CustomerService covers customer profile and admin account management.
// Registration and login live in AuthService.
type CustomerService struct {
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository, dispatcher events.Dispatcher) *CustomerService {
	return &CustomerService{customers: customers, dispatcher: dispatcher}
}

// GetByID fetches one customer.
func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// UpdateName lets a customer change their display name.
func (s *CustomerService) UpdateName(ctx context.Context, customerID, name string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	customer.Name = name
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// List pages through customers for the admin panel.
func (s *CustomerService) List(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	return s.customers.List(ctx, filter)
}

// SetStatus suspends or reactivates an account. Outstanding access tokens
// stay valid until expiry, but refresh and fresh verification reject the
// account immediately.
func (s *CustomerService) SetStatus(ctx context.Context, actor *domain.Principal, customerID string, status domain.PrincipalStatus) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	customer.Status = status
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}

	if s.dispatcher != nil && actor != nil && status == domain.PrincipalStatusSuspended {
		s.dispatcher.Publish(ctx, events.Event{
			Type:       events.EventCustomerSuspended,
			Actor:      events.Actor{Class: actor.Class, ID: actor.ID},
			EntityType: "customer",
			EntityID:   customerID,
		})
	}
	return customer, nil
}
