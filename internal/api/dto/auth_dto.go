package dto

import "time"

// StaffLoginRequest payload for admin panel login.
type StaffLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CustomerLoginRequest payload for storefront login.
type CustomerLoginRequest struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required"`
}

// CustomerRegisterRequest payload for new storefront accounts.
type CustomerRegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// RefreshRequest payload for token rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// PasswordChangeRequest payload for authenticated password change.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// TokenResponse describes one issued token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Access  TokenResponse `json:"access"`
	Refresh TokenResponse `json:"refresh"`
}

// PrincipalResponse describes the authenticated caller.
type PrincipalResponse struct {
	ID    string  `json:"id"`
	Class string  `json:"class"`
	Role  *string `json:"role,omitempty"`
	Name  string  `json:"name,omitempty"`
}
