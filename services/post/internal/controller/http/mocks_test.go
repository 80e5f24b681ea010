package http

import (
	"context"

	"postcraft/services/post/internal/composer"
	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockComposerUseCase is a mock implementation of ComposerUseCase
type MockComposerUseCase struct {
	mock.Mock
}

func (m *MockComposerUseCase) CreateSession(identity entity.Identity) composer.View {
	args := m.Called(identity)
	return args.Get(0).(composer.View)
}

func (m *MockComposerUseCase) GetSession(id string, identity entity.Identity) (composer.View, error) {
	args := m.Called(id, identity)
	return args.Get(0).(composer.View), args.Error(1)
}

func (m *MockComposerUseCase) UpdateDraft(id string, identity entity.Identity, edit composer.DraftEdit) (composer.View, error) {
	args := m.Called(id, identity, edit)
	return args.Get(0).(composer.View), args.Error(1)
}

func (m *MockComposerUseCase) TogglePlatform(id string, identity entity.Identity, platform string) (composer.View, error) {
	args := m.Called(id, identity, platform)
	return args.Get(0).(composer.View), args.Error(1)
}

func (m *MockComposerUseCase) ImproveWriting(id string, identity entity.Identity) (uint64, error) {
	args := m.Called(id, identity)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockComposerUseCase) GenerateImage(ctx context.Context, id string, identity entity.Identity) (*composer.Generation, error) {
	args := m.Called(ctx, id, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*composer.Generation), args.Error(1)
}

func (m *MockComposerUseCase) Submit(ctx context.Context, id string, identity entity.Identity) (*entity.Post, error) {
	args := m.Called(ctx, id, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockComposerUseCase) CloseSession(id string, identity entity.Identity) error {
	args := m.Called(id, identity)
	return args.Error(0)
}

func (m *MockComposerUseCase) BrandTemplates(ctx context.Context, identity entity.Identity, refresh bool) (*usecase.BrandTemplateList, error) {
	args := m.Called(ctx, identity, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BrandTemplateList), args.Error(1)
}

var _ usecase.ComposerUseCase = (*MockComposerUseCase)(nil)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) History(ctx context.Context, identity entity.Identity, limit, offset int) (*usecase.HistoryPage, error) {
	args := m.Called(ctx, identity, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.HistoryPage), args.Error(1)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, identity entity.Identity, postID string) (*entity.Post, error) {
	args := m.Called(ctx, identity, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

var testUser = entity.Identity{UserID: "user-123", Role: entity.RoleMember}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", testUser.UserID)
		c.Set("user_role", testUser.Role)
		c.Next()
	})
	return r
}
