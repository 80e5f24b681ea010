package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID              string    `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID         string    `gorm:"type:uuid;not null;index:idx_posts_owner_submitted,priority:1" json:"owner_id"`
	Platforms       []string  `gorm:"serializer:json;not null" json:"platforms"`
	Text            string    `gorm:"not null" json:"text"`
	Hashtags        string    `json:"hashtags"`
	BrandTemplateID *string   `gorm:"type:uuid" json:"brand_template_id,omitempty"`
	BrandName       string    `json:"brand_name"`
	BrandSlogan     string    `json:"brand_slogan"`
	BrandColor      string    `gorm:"type:varchar(7)" json:"brand_color"`
	ImageURL        string    `json:"image_url"`
	ImagePrompt     string    `json:"image_prompt"`
	VideoURL        string    `gorm:"type:varchar(2048)" json:"video_url"`
	SubmittedAt     time.Time `gorm:"not null;index:idx_posts_owner_submitted,priority:2,sort:desc" json:"submitted_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.SubmittedAt.IsZero() {
		p.SubmittedAt = time.Now().UTC()
	}
	return nil
}
