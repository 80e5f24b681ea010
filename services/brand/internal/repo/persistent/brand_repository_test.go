package persistent

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"postcraft/services/brand/internal/entity"
	"postcraft/services/brand/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "brand.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.BrandTemplateModel{}, &model.UserBrandTemplateModel{}))
	return db
}

func TestBrandRepository_ListOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewBrandRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	older := &entity.BrandTemplate{BrandName: "Acme", Color: "#FF0000", CreatedAt: base}
	newer := &entity.BrandTemplate{BrandName: "Globex", Color: "#00FF00", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	assert.NotEmpty(t, older.ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Globex", all[0].BrandName)
	assert.Equal(t, "Acme", all[1].BrandName)
}

func TestBrandRepository_ListAssigned(t *testing.T) {
	db := newTestDB(t)
	repo := NewBrandRepository(db)
	ctx := context.Background()

	acme := &entity.BrandTemplate{BrandName: "Acme"}
	globex := &entity.BrandTemplate{BrandName: "Globex"}
	require.NoError(t, repo.Create(ctx, acme))
	require.NoError(t, repo.Create(ctx, globex))
	require.NoError(t, db.Create(&model.UserBrandTemplateModel{UserID: "member-1", BrandTemplateID: globex.ID}).Error)

	got, err := repo.ListAssigned(ctx, "member-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, globex.ID, got[0].ID)

	got, err = repo.ListAssigned(ctx, "member-2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestToBrandTemplateEntity_DefaultColor(t *testing.T) {
	e := ToBrandTemplateEntity(&model.BrandTemplateModel{ID: "tpl-1", BrandName: "Acme"})
	assert.Equal(t, entity.DefaultBrandColor, e.Color)
	assert.Nil(t, ToBrandTemplateEntity(nil))
}
