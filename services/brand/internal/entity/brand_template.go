package entity

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const DefaultBrandColor = "#F2994A"

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var (
	ErrBrandNameRequired  = errors.New("brand name is required")
	ErrInvalidColor       = errors.New("color must be a hex value like #F2994A")
	ErrStorageUnavailable = errors.New("file storage is not available")
)

type BrandTemplate struct {
	ID        string    `json:"id"`
	BrandName string    `json:"brand_name"`
	Slogan    string    `json:"slogan"`
	Color     string    `json:"color"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeColor applies the default to an empty value and upper-cases a
// valid one.
func NormalizeColor(color string) (string, error) {
	if color == "" {
		return DefaultBrandColor, nil
	}
	if !colorPattern.MatchString(color) {
		return "", ErrInvalidColor
	}
	return strings.ToUpper(color), nil
}

type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}
