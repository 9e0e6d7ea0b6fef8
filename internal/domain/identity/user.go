package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9._-]{3,50}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User represents an account in the system.
// Role is a flag combination rather than a role table: a user can be a
// platform superuser, a site administrator, and/or site staff.
// Superusers bypass site scoping entirely.
type User struct {
	shared.BaseAggregateRoot
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(254);index"`
	Phone        string     `gorm:"type:varchar(30)"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	FirstName    string     `gorm:"type:varchar(100)"`
	LastName     string     `gorm:"type:varchar(100)"`
	SiteID       *uuid.UUID `gorm:"type:uuid;index"` // nil for unaffiliated superusers
	IsSuperuser  bool       `gorm:"not null;default:false"`
	IsSiteAdmin  bool       `gorm:"not null;default:false"`
	IsStaff      bool       `gorm:"not null;default:false"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user attached to a site
func NewUser(siteID uuid.UUID, username, password string) (*User, error) {
	u, err := newUser(username, password)
	if err != nil {
		return nil, err
	}
	u.SiteID = &siteID
	u.IsStaff = true
	u.AddDomainEvent(NewUserCreatedEvent(u))
	return u, nil
}

// NewSuperuser creates a platform superuser without site affiliation
func NewSuperuser(username, password string) (*User, error) {
	u, err := newUser(username, password)
	if err != nil {
		return nil, err
	}
	u.IsSuperuser = true
	u.IsSiteAdmin = true
	u.IsStaff = true
	u.AddDomainEvent(NewUserCreatedEvent(u))
	return u, nil
}

func newUser(username, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      hash,
		IsActive:          true,
	}, nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	if email != "" {
		email = strings.ToLower(strings.TrimSpace(email))
		if !emailRegex.MatchString(email) {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
	}
	u.Email = email
	u.touch()
	return nil
}

// SetPhone sets the user's phone number
func (u *User) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone != "" && len(phone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	}
	u.Phone = phone
	u.touch()
	return nil
}

// SetName sets the user's first and last name
func (u *User) SetName(firstName, lastName string) {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.touch()
}

// FullName returns the display name of the user
func (u *User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}

// GrantSiteAdmin marks the user as a site administrator
func (u *User) GrantSiteAdmin() {
	u.IsSiteAdmin = true
	u.IsStaff = true
	u.touch()
}

// RevokeSiteAdmin removes site administrator rights
func (u *User) RevokeSiteAdmin() {
	u.IsSiteAdmin = false
	u.touch()
}

// ChangePassword verifies the current password and sets a new one
func (u *User) ChangePassword(current, newPassword string) error {
	if !u.CheckPassword(current) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.ResetPassword(newPassword)
}

// ResetPassword sets a new password without verifying the old one.
// Reserved for administrative resets.
func (u *User) ResetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.touch()
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin records a successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.touch()
	u.AddDomainEvent(NewUserLoggedInEvent(u))
}

// Activate re-enables a deactivated account
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}
	u.IsActive = true
	u.touch()
	return nil
}

// Deactivate disables the account while preserving its history.
// This is the soft-delete path used when hard deletion would orphan
// transactions or sales.
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already deactivated")
	}
	u.IsActive = false
	u.touch()
	u.AddDomainEvent(NewUserDeactivatedEvent(u))
	return nil
}

// CanAccessSite reports whether the user may read records of the given site
func (u *User) CanAccessSite(siteID uuid.UUID) bool {
	if u.IsSuperuser {
		return true
	}
	return u.SiteID != nil && *u.SiteID == siteID
}

// EventSiteID returns the site used for event attribution.
// Superusers without a site attribute events to the nil site.
func (u *User) EventSiteID() uuid.UUID {
	if u.SiteID != nil {
		return *u.SiteID
	}
	return uuid.Nil
}

func (u *User) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

func validateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME",
			"Username must be 3-50 characters of lowercase letters, digits, dot, underscore or hyphen")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
