package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"postcraft/pkg/logger"
	"postcraft/services/brand/internal/entity"
	"postcraft/services/brand/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const (
	allTemplatesKey    = "brand_templates:all"
	allTemplatesTTL    = time.Minute
	templateVersionKey = "brand_templates:ver"
)

// FileUploader stores an object and returns its public URL.
type FileUploader interface {
	UploadFile(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type CreateTemplateInput struct {
	BrandName string
	Slogan    string
	Color     string
	// Logo is optional. LogoName is the client file name.
	Logo            io.Reader
	LogoName        string
	LogoContentType string
}

type BrandUseCase interface {
	List(ctx context.Context, identity entity.Identity) ([]*entity.BrandTemplate, error)
	Create(ctx context.Context, identity entity.Identity, input CreateTemplateInput) (*entity.BrandTemplate, error)
}

type brandUseCase struct {
	brandRepo   persistent.BrandRepository
	uploader    FileUploader
	redisClient *redis.Client
	logger      *logger.Logger
	now         func() time.Time
}

func NewBrandUseCase(brandRepo persistent.BrandRepository, uploader FileUploader, redisClient *redis.Client, logger *logger.Logger) BrandUseCase {
	return &brandUseCase{
		brandRepo:   brandRepo,
		uploader:    uploader,
		redisClient: redisClient,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns every template to admins and the assigned ones to everyone
// else, newest first.
func (uc *brandUseCase) List(ctx context.Context, identity entity.Identity) ([]*entity.BrandTemplate, error) {
	if !identity.IsAdmin() {
		templates, err := uc.brandRepo.ListAssigned(ctx, identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list templates: %w", err)
		}
		return templates, nil
	}

	key := uc.allTemplatesCacheKey(ctx)
	if cached, ok := uc.cachedAll(ctx, key); ok {
		return cached, nil
	}

	templates, err := uc.brandRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	uc.cacheAll(ctx, key, templates)
	return templates, nil
}

func (uc *brandUseCase) Create(ctx context.Context, identity entity.Identity, input CreateTemplateInput) (*entity.BrandTemplate, error) {
	name := strings.TrimSpace(input.BrandName)
	if name == "" {
		return nil, entity.ErrBrandNameRequired
	}
	color, err := entity.NormalizeColor(strings.TrimSpace(input.Color))
	if err != nil {
		return nil, err
	}

	template := &entity.BrandTemplate{
		BrandName: name,
		Slogan:    strings.TrimSpace(input.Slogan),
		Color:     color,
		CreatedBy: identity.UserID,
	}

	if input.Logo != nil {
		if uc.uploader == nil {
			return nil, entity.ErrStorageUnavailable
		}
		key := LogoKey(uc.now(), input.LogoName)
		url, err := uc.uploader.UploadFile(ctx, key, input.Logo, input.LogoContentType)
		if err != nil {
			uc.logger.Error("[BRAND] Failed to upload logo %s: %v", key, err)
			return nil, fmt.Errorf("failed to upload logo: %w", err)
		}
		template.LogoURL = url
	}

	if err := uc.brandRepo.Create(ctx, template); err != nil {
		uc.logger.Error("[BRAND] Failed to create template: %v", err)
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	if uc.redisClient != nil {
		if err := uc.redisClient.Incr(ctx, templateVersionKey).Err(); err != nil {
			uc.logger.Warn("[BRAND] Failed to invalidate template cache: %v", err)
		}
	}

	uc.logger.Info("[BRAND] Created template id=%s name=%q by user_id=%s", template.ID, template.BrandName, identity.UserID)
	return template, nil
}

// LogoKey names the stored logo object logos/<unix-ms>_<file name>.
func LogoKey(at time.Time, fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" {
		base = "logo"
	}
	return fmt.Sprintf("logos/%d_%s", at.UnixMilli(), base)
}

// allTemplatesCacheKey embeds the template version, so a list loaded while
// a template is being created is cached under a key nobody reads again.
func (uc *brandUseCase) allTemplatesCacheKey(ctx context.Context) string {
	if uc.redisClient == nil {
		return allTemplatesKey
	}
	v, err := uc.redisClient.Get(ctx, templateVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		uc.logger.Warn("[BRAND] Failed to read template version: %v", err)
	}
	return fmt.Sprintf("%s:v%d", allTemplatesKey, v)
}

func (uc *brandUseCase) cachedAll(ctx context.Context, key string) ([]*entity.BrandTemplate, bool) {
	if uc.redisClient == nil {
		return nil, false
	}
	data, err := uc.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var templates []*entity.BrandTemplate
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, false
	}
	return templates, true
}

func (uc *brandUseCase) cacheAll(ctx context.Context, key string, templates []*entity.BrandTemplate) {
	if uc.redisClient == nil {
		return
	}
	data, err := json.Marshal(templates)
	if err != nil {
		return
	}
	if err := uc.redisClient.Set(ctx, key, data, allTemplatesTTL).Err(); err != nil {
		uc.logger.Warn("[BRAND] Failed to cache templates: %v", err)
	}
}
