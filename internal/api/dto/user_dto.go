package dto

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// SignupRequest payload for new users.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

// SigninRequest payload for login.
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the outward view of a user. The password hash never
// leaves the service.
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username,omitempty"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}

// NewSigninResponse maps a user together with the issued token.
func NewSigninResponse(u *domain.User, token string, exp time.Time) UserResponse {
	resp := NewUserResponse(u)
	resp.Token = token
	resp.ExpiresAt = &exp
	return resp
}
