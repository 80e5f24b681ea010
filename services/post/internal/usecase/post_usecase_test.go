package usecase

import (
	"context"
	"testing"
	"time"

	"postcraft/pkg/logger"
	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/model"
	"postcraft/services/post/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_NewestFirstWithTemplates(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.BrandTemplateModel{ID: tplAcme.ID, BrandName: "Acme", Color: "#FF0000"}).Error)
	repo := persistent.NewPostRepository(db)
	uc := NewPostUseCase(repo, persistent.NewTemplateRepository(db), nil, time.Minute, logger.New())
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	posts := []*entity.Post{
		{OwnerID: member.UserID, Platforms: []entity.Platform{entity.PlatformX}, Text: "old", BrandTemplateID: tplAcme.ID, Brand: tplAcme.Snapshot(), SubmittedAt: base},
		{OwnerID: member.UserID, Platforms: []entity.Platform{entity.PlatformX}, Text: "deleted brand", BrandTemplateID: "tpl-deleted", Brand: &entity.BrandSnapshot{TemplateID: "tpl-deleted", BrandName: "Gone"}, SubmittedAt: base.Add(time.Hour)},
		{OwnerID: member.UserID, Platforms: []entity.Platform{entity.PlatformX}, Text: "new", SubmittedAt: base.Add(2 * time.Hour)},
		{OwnerID: other.UserID, Platforms: []entity.Platform{entity.PlatformX}, Text: "someone else", SubmittedAt: base.Add(3 * time.Hour)},
	}
	for _, p := range posts {
		require.NoError(t, repo.Create(ctx, p))
	}

	page, err := uc.History(ctx, member, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, defaultHistoryLimit, page.Limit)
	require.Len(t, page.Items, 3)

	assert.Equal(t, "new", page.Items[0].Text)
	assert.Nil(t, page.Items[0].Template)

	assert.Equal(t, "deleted brand", page.Items[1].Text)
	assert.Nil(t, page.Items[1].Template)
	assert.Equal(t, "Gone", page.Items[1].Brand.BrandName)

	assert.Equal(t, "old", page.Items[2].Text)
	require.NotNil(t, page.Items[2].Template)
	assert.Equal(t, "Acme", page.Items[2].Template.BrandName)
}

func TestHistory_Paging(t *testing.T) {
	db := newTestDB(t)
	repo := persistent.NewPostRepository(db)
	uc := NewPostUseCase(repo, persistent.NewTemplateRepository(db), nil, 0, logger.New())
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &entity.Post{
			OwnerID:     member.UserID,
			Platforms:   []entity.Platform{entity.PlatformX},
			Text:        string(rune('a' + i)),
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := uc.History(ctx, member, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "d", page.Items[0].Text)
	assert.Equal(t, "c", page.Items[1].Text)

	page, err = uc.History(ctx, member, 1000, -3)
	require.NoError(t, err)
	assert.Equal(t, maxHistoryLimit, page.Limit)
	assert.Equal(t, 0, page.Offset)
}

func TestHistory_RepositoryFailure(t *testing.T) {
	uc := NewPostUseCase(failingRepo{}, newTemplates(), nil, 0, logger.New())

	_, err := uc.History(context.Background(), member, 10, 0)
	assert.ErrorContains(t, err, "failed to load history")
}

func TestGetPost_Ownership(t *testing.T) {
	db := newTestDB(t)
	repo := persistent.NewPostRepository(db)
	uc := NewPostUseCase(repo, persistent.NewTemplateRepository(db), nil, 0, logger.New())
	ctx := context.Background()

	post := &entity.Post{OwnerID: member.UserID, Platforms: []entity.Platform{entity.PlatformX}, Text: "mine"}
	require.NoError(t, repo.Create(ctx, post))

	got, err := uc.GetPost(ctx, member, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Text)

	_, err = uc.GetPost(ctx, other, post.ID)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = uc.GetPost(ctx, admin, post.ID)
	assert.NoError(t, err)

	_, err = uc.GetPost(ctx, member, "missing")
	assert.ErrorIs(t, err, entity.ErrPostNotFound)
}
