package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"postcraft/pkg/jwt"
	"postcraft/pkg/logger"
	"postcraft/services/auth/internal/entity"
	"postcraft/services/auth/internal/repo/persistent"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// FileUploader stores an object and returns its public URL.
type FileUploader interface {
	UploadFile(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type AuthUseCase interface {
	Register(ctx context.Context, email, displayName, password string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID, displayName string) (*entity.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UploadAvatar(ctx context.Context, userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	AssignTemplates(ctx context.Context, email string, templateIDs []string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	uploader   FileUploader
	logger     *logger.Logger
}

// NewAuthUseCase builds the use case. uploader may be nil, in which case
// avatar uploads fail with ErrStorageUnavailable.
func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	uploader FileUploader,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		uploader:   uploader,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, email, displayName, password string) (*entity.User, string, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, "", entity.ErrDisplayNameRequired
	}
	if len(password) < entity.MinPasswordLength {
		return nil, "", entity.ErrPasswordTooShort
	}

	_, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", entity.ErrEmailTaken
	}
	if !errors.Is(err, entity.ErrUserNotFound) {
		uc.logger.Error("Failed to look up user: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:       email,
		DisplayName: displayName,
		Password:    string(hashedPassword),
		Role:        entity.RoleMember,
		IsActive:    true,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	uc.logger.Info("[AUTH] Registered user_id=%s", user.ID)
	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", entity.ErrAccountDeactivated
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UpdateProfile(ctx context.Context, userID, displayName string) (*entity.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, entity.ErrDisplayNameRequired
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = displayName
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < entity.MinPasswordLength {
		return entity.ErrPasswordTooShort
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return entity.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return fmt.Errorf("failed to change password")
	}

	user.Password = string(hashedPassword)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to update password: %v", err)
		return fmt.Errorf("failed to change password")
	}

	uc.logger.Info("[AUTH] Password changed for user_id=%s", userID)
	return nil
}

func (uc *authUseCase) UploadAvatar(ctx context.Context, userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error) {
	if uc.uploader == nil {
		return nil, entity.ErrStorageUnavailable
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	avatarURL, err := uc.uploader.UploadFile(ctx, fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar")
	}

	user.AvatarURL = avatarURL
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	assignments, err := uc.userRepo.Assignments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	for _, u := range users {
		u.Password = ""
		u.BrandTemplateIDs = assignments[u.ID]
		if u.BrandTemplateIDs == nil {
			u.BrandTemplateIDs = []string{}
		}
	}
	return users, nil
}

// AssignTemplates replaces the template set of a registered user. Every id
// must be a uuid naming an existing template.
func (uc *authUseCase) AssignTemplates(ctx context.Context, email string, templateIDs []string) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, entity.ErrUserNotFound) {
		return nil, entity.ErrUserNotRegistered
	}
	if err != nil {
		return nil, err
	}

	ids := dedupe(templateIDs)
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return nil, entity.ErrUnknownTemplate
		}
	}
	count, err := uc.userRepo.CountTemplates(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check templates: %w", err)
	}
	if count != int64(len(ids)) {
		return nil, entity.ErrUnknownTemplate
	}

	if err := uc.userRepo.ReplaceAssignments(ctx, user.ID, ids); err != nil {
		uc.logger.Error("Failed to replace assignments for user_id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("failed to update assignments")
	}

	uc.logger.Info("[AUTH] Assigned %d brand templates to user_id=%s", len(ids), user.ID)
	user.Password = ""
	user.BrandTemplateIDs = ids
	return user, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
