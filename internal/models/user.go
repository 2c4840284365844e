package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Roles a user can hold on the platform.
const (
	RoleViewer   = "viewer"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one of the platform roles.
func ValidRole(role string) bool {
	return role == RoleViewer || role == RoleReviewer || role == RoleAdmin
}

type User struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password   string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Role       string `json:"role" gorm:"size:20;default:'viewer';index"`
	IsApproved bool   `json:"isApproved" gorm:"default:false"` // Only meaningful for reviewers; admins are always approved
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsApprovedReviewer reports whether the user is a reviewer cleared by an admin.
func (u *User) IsApprovedReviewer() bool {
	return u != nil && u.Role == RoleReviewer && u.IsApproved
}

// RegisterUserRequest defines the request body for public registration.
// Only viewer and reviewer accounts can self-register; reviewer accounts
// start unapproved.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=viewer reviewer"`
}

// CreateUserRequest defines the request body for admin user creation.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=viewer reviewer admin"`
}

// LoginRequest defines the request body for credential login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangeRoleRequest defines the request body for an admin role change.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=viewer reviewer admin"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
