package identity

import (
	"time"

	"github.com/bolibana/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	SiteID      *uuid.UUID
	Username    string
	FullName    string
	Email       string
	Phone       string
	IsSuperuser bool
	IsSiteAdmin bool
	IsStaff     bool
	LastLoginAt *time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput carries the tokens to revoke on logout
type LogoutInput struct {
	AccessToken  string
	RefreshToken string
}

// GetCurrentUserInput identifies the authenticated user
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserRequest contains the input for creating a site user
type CreateUserRequest struct {
	Username    string
	Password    string
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	IsSiteAdmin bool
}

// UpdateUserRequest contains the optional fields of a user update
type UpdateUserRequest struct {
	Email     *string
	Phone     *string
	FirstName *string
	LastName  *string
}

// UserListFilter narrows and paginates user listings
type UserListFilter struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
	OrderDir string
}

// UserResponse is the API representation of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	SiteID      *uuid.UUID `json:"site_id,omitempty"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	FullName    string     `json:"full_name"`
	IsSuperuser bool       `json:"is_superuser"`
	IsSiteAdmin bool       `json:"is_site_admin"`
	IsStaff     bool       `json:"is_staff"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		SiteID:      u.SiteID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		IsSuperuser: u.IsSuperuser,
		IsSiteAdmin: u.IsSiteAdmin,
		IsStaff:     u.IsStaff,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		SiteID:      u.SiteID,
		Username:    u.Username,
		FullName:    u.FullName(),
		Email:       u.Email,
		Phone:       u.Phone,
		IsSuperuser: u.IsSuperuser,
		IsSiteAdmin: u.IsSiteAdmin,
		IsStaff:     u.IsStaff,
		LastLoginAt: u.LastLoginAt,
	}
}
