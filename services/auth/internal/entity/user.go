package entity

import (
	"errors"
	"time"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

const MinPasswordLength = 8

var (
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserNotRegistered   = errors.New("user has not registered yet")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrPasswordTooShort    = errors.New("new password must be at least 8 characters")
	ErrDisplayNameRequired = errors.New("display name is required")
	ErrUnknownTemplate     = errors.New("unknown brand template")
	ErrStorageUnavailable  = errors.New("file storage is not available")
)

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Password    string    `json:"-"`
	AvatarURL   string    `json:"avatar_url"`
	Role        UserRole  `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// BrandTemplateIDs is only filled on admin listings and assignment.
	BrandTemplateIDs []string `json:"brand_template_ids,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
