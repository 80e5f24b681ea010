package persistent

import (
	"context"
	"errors"

	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Post, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and writes back the generated id and timestamp.
func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return err
	}
	post.ID = postModel.ID
	post.SubmittedAt = postModel.SubmittedAt
	return nil
}

// GetByID reports ErrPostNotFound for ids that are not uuids, which
// Postgres would otherwise reject with a syntax error.
func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrPostNotFound
	}
	var postModel model.PostModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&postModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// ListByOwner returns the owner's posts newest first.
func (r *postRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("submitted_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PostModel{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}
