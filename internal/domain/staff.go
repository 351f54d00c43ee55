package domain

import "time"

// StaffMember models an administrative operator account.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Status       PrincipalStatus
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal strips the credential record down to the shape business code
// is allowed to see.
func (s *StaffMember) Principal() *Principal {
	role := s.Role
	return &Principal{
		ID:     s.ID,
		Class:  PrincipalClassStaff,
		Role:   &role,
		Status: s.Status,
		Name:   s.Name,
	}
}
