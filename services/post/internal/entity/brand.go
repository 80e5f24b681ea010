package entity

import "time"

const DefaultBrandColor = "#F2994A"

type BrandTemplate struct {
	ID        string    `json:"id"`
	BrandName string    `json:"brand_name"`
	Slogan    string    `json:"slogan"`
	Color     string    `json:"color"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (t BrandTemplate) Snapshot() *BrandSnapshot {
	return &BrandSnapshot{
		TemplateID: t.ID,
		BrandName:  t.BrandName,
		Slogan:     t.Slogan,
		Color:      t.Color,
	}
}

// BrandSnapshot is the brand as it was when a prompt was built or a post
// was submitted. TemplateID is empty for inline brands.
type BrandSnapshot struct {
	TemplateID string `json:"template_id,omitempty"`
	BrandName  string `json:"brand_name"`
	Slogan     string `json:"slogan,omitempty"`
	Color      string `json:"color,omitempty"`
}

func (b *BrandSnapshot) IsZero() bool {
	return b == nil || (b.BrandName == "" && b.Slogan == "" && b.Color == "")
}
