package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string         `gorm:"not null" json:"display_name"`
	Password    string         `gorm:"not null" json:"-"`
	AvatarURL   string         `gorm:"type:varchar(500)" json:"avatar_url"`
	Role        string         `gorm:"type:varchar(20);default:'member'" json:"role"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

type UserBrandTemplateModel struct {
	UserID          string `gorm:"type:uuid;primaryKey"`
	BrandTemplateID string `gorm:"type:uuid;primaryKey"`
	CreatedAt       time.Time
}

func (UserBrandTemplateModel) TableName() string {
	return "user_brand_templates"
}

// BrandTemplateRef is the slice of brand_templates auth needs to check
// assignment targets exist.
type BrandTemplateRef struct {
	ID string `gorm:"type:uuid;primary_key"`
}

func (BrandTemplateRef) TableName() string {
	return "brand_templates"
}
