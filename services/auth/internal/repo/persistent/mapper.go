package persistent

import (
	"postcraft/services/auth/internal/entity"
	"postcraft/services/auth/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Password:    m.Password,
		AvatarURL:   m.AvatarURL,
		Role:        entity.UserRole(m.Role),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:          e.ID,
		Email:       e.Email,
		DisplayName: e.DisplayName,
		Password:    e.Password,
		AvatarURL:   e.AvatarURL,
		Role:        string(e.Role),
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
