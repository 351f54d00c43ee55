package domain

import "time"

// Customer is the domain model for storefront shoppers.
type Customer struct {
	ID           string
	Name         string
	Phone        string
	PasswordHash string
	Status       PrincipalStatus
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal strips the credential record down to the shape business code
// is allowed to see.
func (c *Customer) Principal() *Principal {
	return &Principal{
		ID:     c.ID,
		Class:  PrincipalClassCustomer,
		Status: c.Status,
		Name:   c.Name,
	}
}
