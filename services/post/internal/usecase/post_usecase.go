package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"postcraft/pkg/logger"
	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryPage struct {
	Items  []entity.HistoryEntry `json:"items"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

type PostUseCase interface {
	History(ctx context.Context, identity entity.Identity, limit, offset int) (*HistoryPage, error)
	GetPost(ctx context.Context, identity entity.Identity, postID string) (*entity.Post, error)
}

type postUseCase struct {
	postRepo     persistent.PostRepository
	templateRepo persistent.TemplateRepository
	redisClient  *redis.Client
	historyTTL   time.Duration
	logger       *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	templateRepo persistent.TemplateRepository,
	redisClient *redis.Client,
	historyTTL time.Duration,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:     postRepo,
		templateRepo: templateRepo,
		redisClient:  redisClient,
		historyTTL:   historyTTL,
		logger:       logger,
	}
}

// History returns the user's posts newest first, each joined with the
// template it referenced when that template still exists.
func (uc *postUseCase) History(ctx context.Context, identity entity.Identity, limit, offset int) (*HistoryPage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	// Pages are stored under the history version read here. A submit that
	// lands mid-load bumps the version, orphaning this page.
	field := fmt.Sprintf("v%d:%d:%d", uc.historyVersion(ctx, identity.UserID), limit, offset)
	if page := uc.cachedHistory(ctx, identity.UserID, field); page != nil {
		return page, nil
	}

	var (
		posts []*entity.Post
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = uc.postRepo.ListByOwner(gctx, identity.UserID, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.postRepo.CountByOwner(gctx, identity.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	templates := uc.templatesFor(ctx, posts)
	page := &HistoryPage{
		Items:  make([]entity.HistoryEntry, len(posts)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for i, p := range posts {
		page.Items[i] = entity.HistoryEntry{Post: *p}
		if tpl, ok := templates[p.BrandTemplateID]; ok {
			tpl := tpl
			page.Items[i].Template = &tpl
		}
	}

	uc.cacheHistory(ctx, identity.UserID, field, page)
	return page, nil
}

// templatesFor loads the templates referenced by posts. A failed lookup
// yields history without templates.
func (uc *postUseCase) templatesFor(ctx context.Context, posts []*entity.Post) map[string]entity.BrandTemplate {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range posts {
		if p.BrandTemplateID != "" && !seen[p.BrandTemplateID] {
			seen[p.BrandTemplateID] = true
			ids = append(ids, p.BrandTemplateID)
		}
	}

	out := make(map[string]entity.BrandTemplate, len(ids))
	if len(ids) == 0 {
		return out
	}
	templates, err := uc.templateRepo.ListByIDs(ctx, ids)
	if err != nil {
		uc.logger.Warn("[HISTORY] Failed to load brand templates: %v", err)
		return out
	}
	for _, t := range templates {
		out[t.ID] = t
	}
	return out
}

func (uc *postUseCase) historyVersion(ctx context.Context, userID string) int64 {
	if uc.redisClient == nil {
		return 0
	}
	v, err := uc.redisClient.Get(ctx, historyVersionKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		uc.logger.Warn("[HISTORY] Version read failed for %s: %v", userID, err)
	}
	return v
}

func (uc *postUseCase) cachedHistory(ctx context.Context, userID, field string) *HistoryPage {
	if uc.redisClient == nil {
		return nil
	}
	data, err := uc.redisClient.HGet(ctx, historyKey(userID), field).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			uc.logger.Warn("[HISTORY] Cache read failed for %s: %v", userID, err)
		}
		return nil
	}
	var page HistoryPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil
	}
	return &page
}

func (uc *postUseCase) cacheHistory(ctx context.Context, userID, field string, page *HistoryPage) {
	if uc.redisClient == nil || uc.historyTTL <= 0 {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	key := historyKey(userID)
	if err := uc.redisClient.HSet(ctx, key, field, data).Err(); err != nil {
		uc.logger.Warn("[HISTORY] Cache write failed for %s: %v", userID, err)
		return
	}
	uc.redisClient.Expire(ctx, key, uc.historyTTL)
}

// GetPost returns a post owned by identity. Admins may read any post.
func (uc *postUseCase) GetPost(ctx context.Context, identity entity.Identity, postID string) (*entity.Post, error) {
	post := uc.cachedPost(ctx, postID)
	if post == nil {
		var err error
		post, err = uc.postRepo.GetByID(ctx, postID)
		if err != nil {
			return nil, err
		}
	}
	if post.OwnerID != identity.UserID && !identity.IsAdmin() {
		return nil, entity.ErrForbidden
	}
	return post, nil
}

func (uc *postUseCase) cachedPost(ctx context.Context, postID string) *entity.Post {
	if uc.redisClient == nil {
		return nil
	}
	data, err := uc.redisClient.HGet(ctx, postKey(postID), "payload").Bytes()
	if err != nil {
		return nil
	}
	var post entity.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil
	}
	return &post
}
