package persistent

import (
	"postcraft/services/brand/internal/entity"
	"postcraft/services/brand/internal/model"
)

func ToBrandTemplateEntity(m *model.BrandTemplateModel) *entity.BrandTemplate {
	if m == nil {
		return nil
	}
	color := m.Color
	if color == "" {
		color = entity.DefaultBrandColor
	}
	return &entity.BrandTemplate{
		ID:        m.ID,
		BrandName: m.BrandName,
		Slogan:    m.Slogan,
		Color:     color,
		LogoURL:   m.LogoURL,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

func ToBrandTemplateModel(e *entity.BrandTemplate) *model.BrandTemplateModel {
	if e == nil {
		return nil
	}
	return &model.BrandTemplateModel{
		ID:        e.ID,
		BrandName: e.BrandName,
		Slogan:    e.Slogan,
		Color:     e.Color,
		LogoURL:   e.LogoURL,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}
