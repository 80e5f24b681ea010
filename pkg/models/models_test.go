package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:       "test@example.com",
		DisplayName: "Test User",
		Password:    "password",
		Role:        RoleMember,
		IsActive:    true,
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:       existingID,
		Email:    "test@example.com",
		Password: "password",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestPost_BeforeCreate(t *testing.T) {
	post := &Post{
		OwnerID:   "owner-123",
		Platforms: []string{"X"},
		Text:      "hello",
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.SubmittedAt.IsZero())
}

func TestPost_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-post-id"
	post := &Post{
		ID:      existingID,
		OwnerID: "owner-123",
		Text:    "hello",
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, post.ID)
}

func TestBrandTemplate_BeforeCreate_DefaultColor(t *testing.T) {
	tpl := &BrandTemplate{BrandName: "Acme"}

	err := tpl.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, DefaultBrandColor, tpl.Color)

	custom := &BrandTemplate{BrandName: "Acme", Color: "#FF0000"}
	assert.NoError(t, custom.BeforeCreate(nil))
	assert.Equal(t, "#FF0000", custom.Color)
}

func TestUserRole_Constants(t *testing.T) {
	assert.Equal(t, UserRole("admin"), RoleAdmin)
	assert.Equal(t, UserRole("member"), RoleMember)
}
