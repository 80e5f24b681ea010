package persistent

import (
	"context"
	"path/filepath"
	"testing"

	"postcraft/services/auth/internal/entity"
	"postcraft/services/auth/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.UserModel{}, &model.UserBrandTemplateModel{}, &model.BrandTemplateRef{}))
	return db
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &entity.User{Email: "Ada@Example.com ", DisplayName: "Ada", Password: "hash", Role: entity.RoleMember, IsActive: true}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)

	byEmail, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.DisplayName)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestUserRepository_ReplaceAssignments(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&[]model.BrandTemplateRef{{ID: "tpl-a"}, {ID: "tpl-b"}, {ID: "tpl-c"}}).Error)
	user := &entity.User{Email: "m@example.com", DisplayName: "M", Password: "x", Role: entity.RoleMember}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.ReplaceAssignments(ctx, user.ID, []string{"tpl-a", "tpl-b"}))
	got, err := repo.Assignments(ctx, []string{user.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"tpl-a", "tpl-b"}, got[user.ID])

	require.NoError(t, repo.ReplaceAssignments(ctx, user.ID, []string{"tpl-c"}))
	got, err = repo.Assignments(ctx, []string{user.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"tpl-c"}, got[user.ID])

	require.NoError(t, repo.ReplaceAssignments(ctx, user.ID, nil))
	got, err = repo.Assignments(ctx, []string{user.ID})
	require.NoError(t, err)
	assert.Empty(t, got[user.ID])
}

func TestUserRepository_CountTemplates(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Create(&[]model.BrandTemplateRef{{ID: "tpl-a"}, {ID: "tpl-b"}}).Error)

	count, err := repo.CountTemplates(ctx, []string{"tpl-a", "tpl-missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountTemplates(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
