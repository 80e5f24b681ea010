package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BrandTemplateModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	BrandName string    `gorm:"not null" json:"brand_name"`
	Slogan    string    `json:"slogan"`
	Color     string    `gorm:"type:varchar(7);default:'#F2994A'" json:"color"`
	LogoURL   string    `gorm:"type:varchar(500)" json:"logo_url"`
	CreatedBy string    `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (BrandTemplateModel) TableName() string {
	return "brand_templates"
}

func (m *BrandTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
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
