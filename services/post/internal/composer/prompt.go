package composer

import (
	"strings"

	"postcraft/services/post/internal/entity"
)

// BuildImagePrompt renders the default generation prompt. Brand clauses are
// included only for the fields that are set. Values are inserted verbatim.
func BuildImagePrompt(text string, brand *entity.BrandSnapshot) string {
	var b strings.Builder
	b.WriteString("Create a visually appealing graphic for a social media post")
	if brand != nil && brand.BrandName != "" {
		b.WriteString(` for "` + brand.BrandName + `"`)
	}
	b.WriteString(`. The content is about: "` + text + `".`)
	if brand != nil && brand.Slogan != "" {
		b.WriteString(` The brand's slogan is "` + brand.Slogan + `".`)
	}
	if brand != nil && brand.Color != "" {
		b.WriteString(" The primary brand color is " + brand.Color + ".")
	}
	b.WriteString(" Make it modern and engaging.")
	return b.String()
}
