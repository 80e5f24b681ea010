package persistent

import (
	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Platforms:   make([]entity.Platform, 0, len(m.Platforms)),
		Text:        m.Text,
		Hashtags:    m.Hashtags,
		ImageURL:    m.ImageURL,
		ImagePrompt: m.ImagePrompt,
		VideoURL:    m.VideoURL,
		SubmittedAt: m.SubmittedAt,
	}
	for _, p := range m.Platforms {
		post.Platforms = append(post.Platforms, entity.Platform(p))
	}
	if m.BrandTemplateID != nil {
		post.BrandTemplateID = *m.BrandTemplateID
	}
	if m.BrandName != "" || m.BrandSlogan != "" || m.BrandColor != "" {
		post.Brand = &entity.BrandSnapshot{
			TemplateID: post.BrandTemplateID,
			BrandName:  m.BrandName,
			Slogan:     m.BrandSlogan,
			Color:      m.BrandColor,
		}
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	post := &model.PostModel{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Platforms:   make([]string, 0, len(e.Platforms)),
		Text:        e.Text,
		Hashtags:    e.Hashtags,
		ImageURL:    e.ImageURL,
		ImagePrompt: e.ImagePrompt,
		VideoURL:    e.VideoURL,
		SubmittedAt: e.SubmittedAt,
	}
	for _, p := range e.Platforms {
		post.Platforms = append(post.Platforms, string(p))
	}
	if e.BrandTemplateID != "" {
		id := e.BrandTemplateID
		post.BrandTemplateID = &id
	}
	if e.Brand != nil {
		post.BrandName = e.Brand.BrandName
		post.BrandSlogan = e.Brand.Slogan
		post.BrandColor = e.Brand.Color
	}

	return post
}

func ToBrandTemplateEntity(m *model.BrandTemplateModel) entity.BrandTemplate {
	color := m.Color
	if color == "" {
		color = entity.DefaultBrandColor
	}
	return entity.BrandTemplate{
		ID:        m.ID,
		BrandName: m.BrandName,
		Slogan:    m.Slogan,
		Color:     color,
		LogoURL:   m.LogoURL,
		CreatedAt: m.CreatedAt,
	}
}
