package model

import "time"

// BrandTemplateModel is read-only here; templates are written by the brand
// service.
type BrandTemplateModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	BrandName string    `gorm:"not null" json:"brand_name"`
	Slogan    string    `json:"slogan"`
	Color     string    `gorm:"type:varchar(7)" json:"color"`
	LogoURL   string    `gorm:"type:varchar(500)" json:"logo_url"`
	CreatedBy string    `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (BrandTemplateModel) TableName() string {
	return "brand_templates"
}

type UserBrandTemplateModel struct {
	UserID          string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	BrandTemplateID string    `gorm:"type:uuid;primaryKey" json:"brand_template_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (UserBrandTemplateModel) TableName() string {
	return "user_brand_templates"
}
