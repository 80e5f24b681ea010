package persistent

import (
	"context"

	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/model"

	"gorm.io/gorm"
)

type TemplateRepository interface {
	ListAll(ctx context.Context) ([]entity.BrandTemplate, error)
	ListByIDs(ctx context.Context, ids []string) ([]entity.BrandTemplate, error)
	ListAssigned(ctx context.Context, userID string) ([]entity.BrandTemplate, error)
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// ListAll returns every template, newest first.
func (r *templateRepository) ListAll(ctx context.Context) ([]entity.BrandTemplate, error) {
	var models []model.BrandTemplateModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toTemplates(models), nil
}

func (r *templateRepository) ListByIDs(ctx context.Context, ids []string) ([]entity.BrandTemplate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []model.BrandTemplateModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	return toTemplates(models), nil
}

// ListAssigned returns the templates granted to userID, newest first.
func (r *templateRepository) ListAssigned(ctx context.Context, userID string) ([]entity.BrandTemplate, error) {
	var models []model.BrandTemplateModel
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN user_brand_templates ON user_brand_templates.brand_template_id = brand_templates.id").
		Where("user_brand_templates.user_id = ?", userID).
		Order("brand_templates.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toTemplates(models), nil
}

func toTemplates(models []model.BrandTemplateModel) []entity.BrandTemplate {
	out := make([]entity.BrandTemplate, len(models))
	for i := range models {
		out[i] = ToBrandTemplateEntity(&models[i])
	}
	return out
}
