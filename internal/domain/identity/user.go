package identity

import (
	"context"
	"strings"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is a coarse-grained access role
type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleEducationManager Role = "EDUCATION_MANAGER"
	RoleTeacher          Role = "TEACHER"
	RoleGuardian         Role = "GUARDIAN"
	RoleHRManager        Role = "HR_MANAGER"
	RoleAccountant       Role = "ACCOUNTANT"
	RoleNurse            Role = "NURSE"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEducationManager, RoleTeacher, RoleGuardian,
		RoleHRManager, RoleAccountant, RoleNurse:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// User represents a portal user account aggregate root
type User struct {
	shared.BaseAggregateRoot
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Roles        []Role     `json:"roles"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

// NewUser creates an active user with a bcrypt-hashed password
func NewUser(username, email, password string, roles ...Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	if len(roles) == 0 {
		return nil, shared.NewDomainError("INVALID_ROLES", "At least one role is required")
	}
	for _, r := range roles {
		if !r.IsValid() {
			return nil, shared.NewDomainError("INVALID_ROLES", "Role "+r.String()+" is not valid")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      string(hash),
		Roles:             roles,
		IsActive:          true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the password after verifying the current one
func (u *User) ChangePassword(current, next string) error {
	if !u.CheckPassword(current) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if len(next) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// HasRole reports whether the user holds the given role
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.Touch()
}

// Deactivate disables the account; inactive users cannot log in
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

// RoleStrings returns the user's roles as plain strings
func (u *User) RoleStrings() []string {
	out := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		out[i] = r.String()
	}
	return out
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByRole(ctx context.Context, role Role) ([]*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
