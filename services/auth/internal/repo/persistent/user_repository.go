package persistent

import (
	"context"
	"errors"
	"strings"

	"postcraft/services/auth/internal/entity"
	"postcraft/services/auth/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	// Assignments maps user id to assigned template ids for the given users.
	Assignments(ctx context.Context, userIDs []string) (map[string][]string, error)
	ReplaceAssignments(ctx context.Context, userID string, templateIDs []string) error
	CountTemplates(ctx context.Context, ids []string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	userModel.Email = normalizeEmail(userModel.Email)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) first(ctx context.Context, query string, arg string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&userModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", normalizeEmail(email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	return r.db.WithContext(ctx).Save(userModel).Error
}

func (r *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userModels []model.UserModel
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}

func (r *userRepository) Assignments(ctx context.Context, userIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []model.UserBrandTemplateModel
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("brand_template_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.UserID] = append(out[row.UserID], row.BrandTemplateID)
	}
	return out, nil
}

// ReplaceAssignments swaps the user's whole assignment set in one transaction.
func (r *userRepository) ReplaceAssignments(ctx context.Context, userID string, templateIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserBrandTemplateModel{}).Error; err != nil {
			return err
		}
		if len(templateIDs) == 0 {
			return nil
		}
		rows := make([]model.UserBrandTemplateModel, 0, len(templateIDs))
		for _, id := range templateIDs {
			rows = append(rows, model.UserBrandTemplateModel{UserID: userID, BrandTemplateID: id})
		}
		return tx.Create(&rows).Error
	})
}

func (r *userRepository) CountTemplates(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BrandTemplateRef{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
