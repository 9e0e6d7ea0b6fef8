package handler

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest represents the login request body
// @Description Login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=150" example:"aminata"`
	Password string `json:"password" binding:"required,min=1" example:"Password123"`
}

// TokenResponse represents an issued token pair
// @Description Access and refresh token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type" example:"Bearer"`
}

// AuthUserResponse represents the authenticated user in auth responses
// @Description Authenticated user profile
type AuthUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	SiteID      *uuid.UUID `json:"site_id,omitempty"`
	Username    string     `json:"username" example:"aminata"`
	FullName    string     `json:"full_name" example:"Aminata Traoré"`
	Email       string     `json:"email,omitempty" example:"aminata@bolibana.ml"`
	Phone       string     `json:"phone,omitempty" example:"+22370000000"`
	IsSuperuser bool       `json:"is_superuser"`
	IsSiteAdmin bool       `json:"is_site_admin"`
	IsStaff     bool       `json:"is_staff"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse represents the login response
// @Description Successful login result
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// RefreshTokenRequest represents the token refresh request body
// @Description Refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse represents the token refresh response
// @Description New token pair
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// LogoutRequest represents the logout request body
// @Description Optional refresh token to revoke alongside the access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutResponse represents the logout response
// @Description Logout confirmation
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// ChangePasswordRequest represents the password change request body
// @Description Old and new password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
