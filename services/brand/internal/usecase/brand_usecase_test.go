package usecase

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"postcraft/pkg/logger"
	"postcraft/services/brand/internal/entity"
	"postcraft/services/brand/internal/model"
	"postcraft/services/brand/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) UploadFile(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, body)
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

var (
	admin  = entity.Identity{UserID: "admin-1", Role: "admin"}
	member = entity.Identity{UserID: "member-1", Role: "member"}
)

func newTestUseCase(t *testing.T, uploader FileUploader) (*brandUseCase, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "brand.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.BrandTemplateModel{}, &model.UserBrandTemplateModel{}))

	uc := NewBrandUseCase(persistent.NewBrandRepository(db), uploader, nil, logger.New()).(*brandUseCase)
	uc.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return uc, db
}

func TestCreate_Defaults(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeUploader{})

	tpl, err := uc.Create(context.Background(), admin, CreateTemplateInput{BrandName: "  Acme  ", Slogan: "Build it better"})
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, "Acme", tpl.BrandName)
	assert.Equal(t, entity.DefaultBrandColor, tpl.Color)
	assert.Equal(t, "admin-1", tpl.CreatedBy)
	assert.Empty(t, tpl.LogoURL)
}

func TestCreate_Validation(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeUploader{})
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, CreateTemplateInput{BrandName: "   "})
	assert.ErrorIs(t, err, entity.ErrBrandNameRequired)

	_, err = uc.Create(ctx, admin, CreateTemplateInput{BrandName: "Acme", Color: "red"})
	assert.ErrorIs(t, err, entity.ErrInvalidColor)
}

func TestCreate_WithLogo(t *testing.T) {
	uploader := &fakeUploader{}
	uc, _ := newTestUseCase(t, uploader)

	tpl, err := uc.Create(context.Background(), admin, CreateTemplateInput{
		BrandName:       "Acme",
		Color:           "#ff0000",
		Logo:            strings.NewReader("png"),
		LogoName:        "acme logo.png",
		LogoContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"logos/1700000000123_acme logo.png"}, uploader.keys)
	assert.Equal(t, "https://cdn.example.com/logos/1700000000123_acme logo.png", tpl.LogoURL)
	assert.Equal(t, "#FF0000", tpl.Color)
}

func TestCreate_LogoFailures(t *testing.T) {
	ctx := context.Background()
	input := CreateTemplateInput{BrandName: "Acme", Logo: strings.NewReader("png"), LogoName: "a.png"}

	uc, db := newTestUseCase(t, &fakeUploader{err: errors.New("s3 down")})
	_, err := uc.Create(ctx, admin, input)
	assert.Error(t, err)
	var count int64
	db.Model(&model.BrandTemplateModel{}).Count(&count)
	assert.Zero(t, count)

	noStorage, _ := newTestUseCase(t, nil)
	_, err = noStorage.Create(ctx, admin, CreateTemplateInput{BrandName: "Acme", Logo: strings.NewReader("png"), LogoName: "a.png"})
	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)
}

func TestList_FiltersByIdentity(t *testing.T) {
	uc, db := newTestUseCase(t, nil)
	ctx := context.Background()

	acme, err := uc.Create(ctx, admin, CreateTemplateInput{BrandName: "Acme"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, CreateTemplateInput{BrandName: "Globex"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.UserBrandTemplateModel{UserID: member.UserID, BrandTemplateID: acme.ID}).Error)

	all, err := uc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assigned, err := uc.List(ctx, member)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Acme", assigned[0].BrandName)

	none, err := uc.List(ctx, entity.Identity{UserID: "stranger", Role: "member"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLogoKey(t *testing.T) {
	at := time.UnixMilli(42)
	assert.Equal(t, "logos/42_logo.png", LogoKey(at, "logo.png"))
	assert.Equal(t, "logos/42_logo.png", LogoKey(at, "../../etc/logo.png"))
	assert.Equal(t, "logos/42_logo.png", LogoKey(at, `C:\Users\me\logo.png`))
	assert.Equal(t, "logos/42_logo", LogoKey(at, ""))
}
