package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultBrandColor = "#F2994A"

type BrandTemplate struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	BrandName string    `gorm:"not null" json:"brand_name"`
	Slogan    string    `json:"slogan"`
	Color     string    `gorm:"type:varchar(7);default:'#F2994A'" json:"color"`
	LogoURL   string    `gorm:"type:varchar(500)" json:"logo_url"`
	CreatedBy string    `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *BrandTemplate) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Color == "" {
		b.Color = DefaultBrandColor
	}
	return nil
}

// UserBrandTemplate grants a non-admin user access to one template.
type UserBrandTemplate struct {
	UserID          string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	BrandTemplateID string    `gorm:"type:uuid;primaryKey" json:"brand_template_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (UserBrandTemplate) TableName() string {
	return "user_brand_templates"
}
