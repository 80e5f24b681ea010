package entity

import "time"

// Post is a submitted draft. It is never modified after creation.
type Post struct {
	ID              string         `json:"id"`
	OwnerID         string         `json:"owner_id"`
	Platforms       []Platform     `json:"platforms"`
	Text            string         `json:"text"`
	Hashtags        string         `json:"hashtags"`
	BrandTemplateID string         `json:"brand_template_id,omitempty"`
	Brand           *BrandSnapshot `json:"brand,omitempty"`
	ImageURL        string         `json:"image_url,omitempty"`
	ImagePrompt     string         `json:"image_prompt,omitempty"`
	VideoURL        string         `json:"video_url,omitempty"`
	SubmittedAt     time.Time      `json:"submitted_at"`
}

// HistoryEntry pairs a post with the template it referenced, if that
// template still exists.
type HistoryEntry struct {
	Post
	Template *BrandTemplate `json:"template,omitempty"`
}
