package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/storefront-service/internal/domain"
)

func TestRequireRole(t *testing.T) {
	admin := domain.StaffRoleAdmin
	superAdmin := domain.StaffRoleSuperAdmin

	adminPrincipal := &domain.Principal{ID: "s1", Class: domain.PrincipalClassStaff, Role: &admin}
	superPrincipal := &domain.Principal{ID: "s2", Class: domain.PrincipalClassStaff, Role: &superAdmin}
	customer := &domain.Principal{ID: "c1", Class: domain.PrincipalClassCustomer}

	tests := []struct {
		name      string
		principal *domain.Principal
		required  RoleRequirement
		wantErr   error
	}{
		{name: "nil principal any", principal: nil, required: RequireAnyAuthenticated, wantErr: ErrUnauthenticated},
		{name: "nil principal admin", principal: nil, required: RequireAdmin, wantErr: ErrUnauthenticated},
		{name: "customer any", principal: customer, required: RequireAnyAuthenticated},
		{name: "customer admin", principal: customer, required: RequireAdmin, wantErr: ErrInsufficientRole},
		{name: "customer super admin", principal: customer, required: RequireSuperAdmin, wantErr: ErrInsufficientRole},
		{name: "admin any", principal: adminPrincipal, required: RequireAnyAuthenticated},
		{name: "admin admin", principal: adminPrincipal, required: RequireAdmin},
		{name: "admin super admin", principal: adminPrincipal, required: RequireSuperAdmin, wantErr: ErrInsufficientRole},
		{name: "super admin any", principal: superPrincipal, required: RequireAnyAuthenticated},
		{name: "super admin admin", principal: superPrincipal, required: RequireAdmin},
		{name: "super admin super admin", principal: superPrincipal, required: RequireSuperAdmin},
		{name: "unknown requirement", principal: superPrincipal, required: RoleRequirement("owner"), wantErr: ErrInsufficientRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.principal, tt.required)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRequireRole_StaffWithoutRole(t *testing.T) {
	// A staff principal missing its role claim must not pass staff gates.
	noRole := &domain.Principal{ID: "s3", Class: domain.PrincipalClassStaff}
	assert.ErrorIs(t, RequireRole(noRole, RequireAdmin), ErrInsufficientRole)
	assert.ErrorIs(t, RequireRole(noRole, RequireSuperAdmin), ErrInsufficientRole)
}
