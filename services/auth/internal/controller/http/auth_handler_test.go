package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"postcraft/services/auth/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, email, displayName, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, displayName, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) UpdateProfile(ctx context.Context, userID, displayName string) (*entity.User, error) {
	args := m.Called(ctx, userID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return m.Called(ctx, userID, currentPassword, newPassword).Error(0)
}

func (m *MockAuthUseCase) UploadAvatar(ctx context.Context, userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error) {
	args := m.Called(ctx, userID, fileReader, fileKey, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) AssignTemplates(ctx context.Context, email string, templateIDs []string) (*entity.User, error) {
	args := m.Called(ctx, email, templateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func setupTestRouter(uc *MockAuthUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(uc)
	r := gin.New()
	r.POST("/register", handler.Register)
	r.POST("/login", handler.Login)

	authed := r.Group("")
	authed.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("user_role", "member")
		c.Next()
	})
	authed.GET("/me", handler.Me)
	authed.PUT("/me", handler.UpdateMe)
	authed.POST("/me/password", handler.ChangePassword)
	authed.POST("/me/avatar", handler.UploadAvatar)
	authed.GET("/users", handler.ListUsers)
	authed.PUT("/users/assignments", handler.AssignTemplates)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	uc := new(MockAuthUseCase)
	user := &entity.User{ID: "user-1", Email: "ada@example.com", DisplayName: "Ada", Role: entity.RoleMember}
	uc.On("Register", mock.Anything, "ada@example.com", "Ada", "password123").Return(user, "token-1", nil)

	w := doJSON(setupTestRouter(uc), "POST", "/register", RegisterRequest{Email: "ada@example.com", DisplayName: "Ada", Password: "password123"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "token-1", response.Token)
	assert.Equal(t, "Ada", response.User.DisplayName)
	uc.AssertExpectations(t)
}

func TestRegister_Conflict(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("Register", mock.Anything, "ada@example.com", "Ada", "password123").Return(nil, "", entity.ErrEmailTaken)

	w := doJSON(setupTestRouter(uc), "POST", "/register", RegisterRequest{Email: "ada@example.com", DisplayName: "Ada", Password: "password123"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_InvalidBody(t *testing.T) {
	uc := new(MockAuthUseCase)

	w := doJSON(setupTestRouter(uc), "POST", "/register", map[string]string{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Register")
}

func TestLogin_Statuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"bad credentials", entity.ErrInvalidCredentials, http.StatusUnauthorized},
		{"deactivated", entity.ErrAccountDeactivated, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockAuthUseCase)
			if tt.err == nil {
				uc.On("Login", mock.Anything, "ada@example.com", "pw").Return(&entity.User{ID: "user-1"}, "tok", nil)
			} else {
				uc.On("Login", mock.Anything, "ada@example.com", "pw").Return(nil, "", tt.err)
			}

			w := doJSON(setupTestRouter(uc), "POST", "/login", LoginRequest{Email: "ada@example.com", Password: "pw"})
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestMe(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("GetUser", mock.Anything, "user-1").Return(&entity.User{ID: "user-1", DisplayName: "Ada"}, nil)

	w := doJSON(setupTestRouter(uc), "GET", "/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"display_name":"Ada"`)
}

func TestUpdateMe(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("UpdateProfile", mock.Anything, "user-1", "Ada L").Return(&entity.User{ID: "user-1", DisplayName: "Ada L"}, nil)

	w := doJSON(setupTestRouter(uc), "PUT", "/me", UpdateProfileRequest{DisplayName: "Ada L"})

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestUpdateMe_MissingName(t *testing.T) {
	uc := new(MockAuthUseCase)

	w := doJSON(setupTestRouter(uc), "PUT", "/me", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePassword_Statuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"wrong current", entity.ErrWrongPassword, http.StatusUnauthorized},
		{"too short", entity.ErrPasswordTooShort, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockAuthUseCase)
			uc.On("ChangePassword", mock.Anything, "user-1", "old", "newpassword").Return(tt.err)

			w := doJSON(setupTestRouter(uc), "POST", "/me/password", ChangePasswordRequest{CurrentPassword: "old", NewPassword: "newpassword"})
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestUploadAvatar_RejectsExtension(t *testing.T) {
	uc := new(MockAuthUseCase)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("avatar", "avatar.exe")
	part.Write([]byte("data"))
	writer.Close()

	req, _ := http.NewRequest("POST", "/me/avatar", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	setupTestRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "UploadAvatar")
}

func TestUploadAvatar_NoStorage(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("UploadAvatar", mock.Anything, "user-1", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(nil, entity.ErrStorageUnavailable)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("avatar", "avatar.png")
	part.Write([]byte("png"))
	writer.Close()

	req, _ := http.NewRequest("POST", "/me/avatar", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	setupTestRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListUsers(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("ListUsers", mock.Anything).Return([]*entity.User{
		{ID: "user-1", BrandTemplateIDs: []string{"tpl-a"}},
	}, nil)

	w := doJSON(setupTestRouter(uc), "GET", "/users", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestListUsers_Error(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("ListUsers", mock.Anything).Return(nil, errors.New("db down"))

	w := doJSON(setupTestRouter(uc), "GET", "/users", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAssignTemplates_NotRegistered(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("AssignTemplates", mock.Anything, "new@example.com", []string{"tpl-a"}).Return(nil, entity.ErrUserNotRegistered)

	w := doJSON(setupTestRouter(uc), "PUT", "/users/assignments", AssignTemplatesRequest{Email: "new@example.com", BrandTemplateIDs: []string{"tpl-a"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user has not registered yet")
}

func TestAssignTemplates_Success(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("AssignTemplates", mock.Anything, "m@example.com", []string{"tpl-a"}).
		Return(&entity.User{ID: "user-2", BrandTemplateIDs: []string{"tpl-a"}}, nil)

	w := doJSON(setupTestRouter(uc), "PUT", "/users/assignments", AssignTemplatesRequest{Email: "m@example.com", BrandTemplateIDs: []string{"tpl-a"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"brand_template_ids":["tpl-a"]`)
}
