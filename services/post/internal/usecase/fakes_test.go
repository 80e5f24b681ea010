package usecase

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"postcraft/pkg/ai"
	"postcraft/pkg/logger"
	"postcraft/pkg/queue"
	"postcraft/services/post/internal/composer"
	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type echoAI struct{}

func (echoAI) ImproveWriting(_ context.Context, req ai.ImproveRequest) (*ai.ImproveResult, error) {
	return &ai.ImproveResult{ImprovedText: req.Text + "!", Hashtags: "#echo"}, nil
}

func (echoAI) GenerateImage(context.Context, string) (string, error) {
	return ai.DataURI("image/png", []byte{1, 2, 3}), nil
}

type nopStore struct{}

func (nopStore) Create(_ context.Context, post *entity.Post) (string, error) {
	return post.ID, nil
}

func newTestComposer(brands composer.BrandResolver) *composer.Composer {
	return composer.New(echoAI{}, echoAI{}, nopStore{}, brands, logger.New(), composer.Options{})
}

type fakeTemplates struct {
	mu       sync.Mutex
	all      []entity.BrandTemplate
	assigned map[string][]entity.BrandTemplate
	err      error
	calls    int
	gate     chan struct{}
}

func (f *fakeTemplates) wait() {
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeTemplates) ListAll(context.Context) ([]entity.BrandTemplate, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.all, f.err
}

func (f *fakeTemplates) ListByIDs(_ context.Context, ids []string) ([]entity.BrandTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.BrandTemplate
	for _, t := range f.all {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, f.err
}

func (f *fakeTemplates) ListAssigned(_ context.Context, userID string) ([]entity.BrandTemplate, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.assigned[userID], f.err
}

func (f *fakeTemplates) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeUploader struct {
	mu   sync.Mutex
	keys []string
	body []byte
	err  error
}

func (f *fakeUploader) UploadFile(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	data, _ := io.ReadAll(body)
	f.keys = append(f.keys, key)
	f.body = data
	return "https://cdn.test/" + key, nil
}

type fakePublisher struct {
	tasks chan queue.PostSubmittedTask
}

func (f *fakePublisher) PublishPostSubmitted(_ context.Context, task queue.PostSubmittedTask) error {
	f.tasks <- task
	return nil
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, *entity.Post) error {
	return errors.New("db down")
}

func (failingRepo) GetByID(context.Context, string) (*entity.Post, error) {
	return nil, errors.New("db down")
}

func (failingRepo) ListByOwner(context.Context, string, int, int) ([]*entity.Post, error) {
	return nil, errors.New("db down")
}

func (failingRepo) CountByOwner(context.Context, string) (int64, error) {
	return 0, errors.New("db down")
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "usecase.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PostModel{}, &model.BrandTemplateModel{}, &model.UserBrandTemplateModel{}))
	return db
}

var (
	member = entity.Identity{UserID: "user-1", Role: entity.RoleMember}
	other  = entity.Identity{UserID: "user-2", Role: entity.RoleMember}
	admin  = entity.Identity{UserID: "admin-1", Role: entity.RoleAdmin}
)
