package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"postcraft/pkg/ai"
	"postcraft/pkg/logger"
	"postcraft/pkg/queue"
	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const (
	postCacheTTL   = 24 * time.Hour
	publishTimeout = 10 * time.Second
	uploadTimeout  = 30 * time.Second

	// Outlives any cached history page.
	historyVersionTTL = 7 * 24 * time.Hour
)

type ObjectUploader interface {
	UploadFile(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type TaskPublisher interface {
	PublishPostSubmitted(ctx context.Context, task queue.PostSubmittedTask) error
}

// PostStore persists submitted posts and runs the best-effort side effects
// of a submission. Any of uploader, redisClient and publisher may be nil.
type PostStore struct {
	postRepo    persistent.PostRepository
	uploader    ObjectUploader
	redisClient *redis.Client
	publisher   TaskPublisher
	logger      *logger.Logger
}

func NewPostStore(
	postRepo persistent.PostRepository,
	uploader ObjectUploader,
	redisClient *redis.Client,
	publisher TaskPublisher,
	logger *logger.Logger,
) *PostStore {
	return &PostStore{
		postRepo:    postRepo,
		uploader:    uploader,
		redisClient: redisClient,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *PostStore) Create(ctx context.Context, post *entity.Post) (string, error) {
	s.uploadImage(ctx, post)

	if err := s.postRepo.Create(ctx, post); err != nil {
		return "", fmt.Errorf("failed to create post: %w", err)
	}

	s.invalidateHistory(post.OwnerID)
	s.cachePost(post)

	if s.publisher != nil {
		go s.publishSubmitted(*post)
	}

	return post.ID, nil
}

// uploadImage replaces an inline generated image with its blob URL. On
// failure the data URI is kept.
func (s *PostStore) uploadImage(ctx context.Context, post *entity.Post) {
	if s.uploader == nil || !ai.IsDataURI(post.ImageURL) {
		return
	}
	mimeType, data, err := ai.ParseDataURI(post.ImageURL)
	if err != nil {
		s.logger.Warn("[POST STORE] Generated image for post %s is not a valid data URI: %v", post.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	key := fmt.Sprintf("posts/%s/%s%s", post.OwnerID, post.ID, ai.Extension(mimeType))
	url, err := s.uploader.UploadFile(ctx, key, bytes.NewReader(data), mimeType)
	if err != nil {
		s.logger.Warn("[POST STORE] Failed to upload image for post %s, keeping inline data: %v", post.ID, err)
		return
	}
	post.ImageURL = url
}

// invalidateHistory bumps the owner's history version before dropping the
// cached pages, so a History call that loaded before the commit cannot
// store its page under the version readers now use.
func (s *PostStore) invalidateHistory(ownerID string) {
	if s.redisClient == nil {
		return
	}
	ctx := context.Background()
	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, historyVersionKey(ownerID))
		pipe.Expire(ctx, historyVersionKey(ownerID), historyVersionTTL)
		pipe.Del(ctx, historyKey(ownerID))
		return nil
	})
	if err != nil {
		s.logger.Warn("[POST STORE] Failed to invalidate history for %s: %v", ownerID, err)
	}
}

func (s *PostStore) cachePost(post *entity.Post) {
	if s.redisClient == nil {
		return
	}
	ctx := context.Background()
	postKey := postKey(post.ID)

	payload, err := json.Marshal(post)
	if err != nil {
		return
	}
	platforms := make([]string, len(post.Platforms))
	for i, p := range post.Platforms {
		platforms[i] = string(p)
	}
	postData := map[string]interface{}{
		"id":           post.ID,
		"owner_id":     post.OwnerID,
		"platforms":    strings.Join(platforms, ","),
		"submitted_at": post.SubmittedAt.Format(time.RFC3339Nano),
		"payload":      string(payload),
	}

	if err := s.redisClient.HSet(ctx, postKey, postData).Err(); err != nil {
		s.logger.Warn("[POST STORE] Failed to cache post %s: %v", post.ID, err)
		return
	}
	s.redisClient.Expire(ctx, postKey, postCacheTTL)
}

func (s *PostStore) publishSubmitted(post entity.Post) {
	task := SubmittedTask(&post)

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	s.logger.Info("[DISTRIBUTION QUEUE] Publishing post_submitted: post_id=%s, owner_id=%s", post.ID, post.OwnerID)
	if err := s.publisher.PublishPostSubmitted(ctx, task); err != nil {
		s.logger.Error("[DISTRIBUTION QUEUE] Failed to publish post_submitted: %v (post_id=%s)", err, post.ID)
	}
}

// SubmittedTask is the distribution message for a stored post.
func SubmittedTask(post *entity.Post) queue.PostSubmittedTask {
	platforms := make([]string, len(post.Platforms))
	for i, p := range post.Platforms {
		platforms[i] = string(p)
	}
	task := queue.PostSubmittedTask{
		Type:        queue.PostSubmittedKey,
		PostID:      post.ID,
		OwnerID:     post.OwnerID,
		Platforms:   platforms,
		Text:        post.Text,
		Hashtags:    post.Hashtags,
		VideoURL:    post.VideoURL,
		SubmittedAt: post.SubmittedAt,
		Priority:    5,
	}
	// Inline images are too large for the queue.
	if !ai.IsDataURI(post.ImageURL) {
		task.ImageURL = post.ImageURL
	}
	if post.Brand != nil {
		task.BrandName = post.Brand.BrandName
	}
	return task
}

func postKey(id string) string {
	return "post:" + id
}

func historyKey(ownerID string) string {
	return "history:user:" + ownerID
}

func historyVersionKey(ownerID string) string {
	return "history:ver:" + ownerID
}
