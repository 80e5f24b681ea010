package entity

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// TextLimit is advisory: longer drafts are reported, not rejected.
const TextLimit = 2200

type Draft struct {
	Platforms         []Platform     `json:"platforms"`
	Text              string         `json:"text"`
	Hashtags          string         `json:"hashtags"`
	BrandTemplateID   string         `json:"brand_template_id,omitempty"`
	InlineBrand       *BrandSnapshot `json:"inline_brand,omitempty"`
	ImagePrompt       string         `json:"image_prompt"`
	GeneratedImageRef string         `json:"generated_image_ref,omitempty"`
	VideoURL          string         `json:"video_url"`
}

func NewDraft() Draft {
	return Draft{Platforms: []Platform{PlatformX}}
}

func (d *Draft) HasPlatform(p Platform) bool {
	for _, existing := range d.Platforms {
		if existing == p {
			return true
		}
	}
	return false
}

// TogglePlatform flips membership of p and keeps the selection ordered.
func (d *Draft) TogglePlatform(p Platform) {
	next := make([]Platform, 0, len(d.Platforms)+1)
	found := false
	for _, existing := range d.Platforms {
		if existing == p {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		next = append(next, p)
		sort.SliceStable(next, func(i, j int) bool {
			return platformRank(next[i]) < platformRank(next[j])
		})
	}
	d.Platforms = next
}

// PlatformLabel is the platform description sent with improve requests.
func (d *Draft) PlatformLabel() string {
	names := make([]string, len(d.Platforms))
	for i, p := range d.Platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func (d *Draft) TextLength() int {
	return utf8.RuneCountInString(d.Text)
}

func (d Draft) Clone() Draft {
	out := d
	out.Platforms = append([]Platform(nil), d.Platforms...)
	if d.InlineBrand != nil {
		brand := *d.InlineBrand
		out.InlineBrand = &brand
	}
	return out
}
