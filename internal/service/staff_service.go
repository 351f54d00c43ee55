package service

import (
	"context"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// StaffService manages administrative staff accounts.
type StaffService struct {
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewStaffService constructs the service.
func NewStaffService(staff repository.StaffRepository, dispatcher events.Dispatcher, bcryptCost int) *StaffService {
	return &StaffService{staff: staff, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// StaffCreateInput describes a new staff account.
type StaffCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.StaffRole
}

// StaffUpdateInput describes partial staff updates.
type StaffUpdateInput struct {
	Name   *string
	Email  *string
	Role   *domain.StaffRole
	Status *domain.PrincipalStatus
}

// Create adds a staff member. Only a super admin may grant the SUPER_ADMIN
// role; route middleware already guarantees the actor is staff.
func (s *StaffService) Create(ctx context.Context, actor *domain.Principal, input StaffCreateInput) (*domain.StaffMember, error) {
	if input.Role == domain.StaffRoleSuperAdmin {
		if err := auth.RequireRole(actor, auth.RequireSuperAdmin); err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	staff := &domain.StaffMember{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       domain.PrincipalStatusActive,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperrors.NewConflict("email already in use", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventStaffCreated, actor, staff.ID)
	return staff, nil
}

// List pages through staff members.
func (s *StaffService) List(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	return s.staff.List(ctx, filter)
}

// GetByID fetches one staff member.
func (s *StaffService) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	return s.staff.GetByID(ctx, id)
}

// Update applies partial changes. Role escalation to SUPER_ADMIN requires a
// super admin actor. A role change takes effect in tokens only at the next
// refresh; outstanding access tokens keep the role they were issued with.
func (s *StaffService) Update(ctx context.Context, actor *domain.Principal, id string, input StaffUpdateInput) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil && *input.Role == domain.StaffRoleSuperAdmin {
		if err := auth.RequireRole(actor, auth.RequireSuperAdmin); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Email != nil {
		staff.Email = *input.Email
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.Status != nil {
		staff.Status = *input.Status
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperrors.NewConflict("email already in use", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventStaffUpdated, actor, staff.ID)
	return staff, nil
}

func (s *StaffService) publish(ctx context.Context, eventType events.EventType, actor *domain.Principal, staffID string) {
	if s.dispatcher == nil || actor == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		Actor:      events.Actor{Class: actor.Class, ID: actor.ID},
		EntityType: "staff",
		EntityID:   staffID,
	})
}
