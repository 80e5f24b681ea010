package persistent

import (
	"context"

	"postcraft/services/brand/internal/entity"
	"postcraft/services/brand/internal/model"

	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(ctx context.Context, template *entity.BrandTemplate) error
	ListAll(ctx context.Context) ([]*entity.BrandTemplate, error)
	ListAssigned(ctx context.Context, userID string) ([]*entity.BrandTemplate, error)
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(ctx context.Context, template *entity.BrandTemplate) error {
	m := ToBrandTemplateModel(template)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*template = *ToBrandTemplateEntity(m)
	return nil
}

func (r *brandRepository) ListAll(ctx context.Context) ([]*entity.BrandTemplate, error) {
	var models []model.BrandTemplateModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

func (r *brandRepository) ListAssigned(ctx context.Context, userID string) ([]*entity.BrandTemplate, error) {
	var models []model.BrandTemplateModel
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN user_brand_templates ON user_brand_templates.brand_template_id = brand_templates.id").
		Where("user_brand_templates.user_id = ?", userID).
		Order("brand_templates.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

func toEntities(models []model.BrandTemplateModel) []*entity.BrandTemplate {
	out := make([]*entity.BrandTemplate, len(models))
	for i := range models {
		out[i] = ToBrandTemplateEntity(&models[i])
	}
	return out
}
