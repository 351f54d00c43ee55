package domain

// PrincipalClass differentiates staff vs customer tokens and credentials.
type PrincipalClass string

const (
	PrincipalClassStaff    PrincipalClass = "STAFF"
	PrincipalClassCustomer PrincipalClass = "CUSTOMER"
)

// Valid reports whether the class is a known one.
func (c PrincipalClass) Valid() bool {
	return c == PrincipalClassStaff || c == PrincipalClassCustomer
}

// StaffRole enumerates internal operator roles.
type StaffRole string

const (
	StaffRoleAdmin      StaffRole = "ADMIN"
	StaffRoleSuperAdmin StaffRole = "SUPER_ADMIN"
)

// Valid reports whether the role is a known one.
func (r StaffRole) Valid() bool {
	return r == StaffRoleAdmin || r == StaffRoleSuperAdmin
}

// PrincipalStatus represents account lifecycle states shared by both classes.
type PrincipalStatus string

const (
	PrincipalStatusActive    PrincipalStatus = "ACTIVE"
	PrincipalStatusInactive  PrincipalStatus = "INACTIVE"
	PrincipalStatusSuspended PrincipalStatus = "SUSPENDED"
)

// Valid reports whether the status is a known one.
func (s PrincipalStatus) Valid() bool {
	return s == PrincipalStatusActive || s == PrincipalStatusInactive || s == PrincipalStatusSuspended
}

// Principal is the authenticated caller handed to business code.
// It never carries the password hash; credential records are stripped
// immediately after verification.
type Principal struct {
	ID     string
	Class  PrincipalClass
	Role   *StaffRole // staff only, nil for customers
	Status PrincipalStatus
	Name   string
}

// IsStaff reports whether the principal is an internal operator.
func (p *Principal) IsStaff() bool {
	return p != nil && p.Class == PrincipalClassStaff
}
