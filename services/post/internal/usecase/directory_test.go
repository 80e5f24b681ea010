package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"postcraft/pkg/logger"
	"postcraft/services/post/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tplAcme   = entity.BrandTemplate{ID: "tpl-acme", BrandName: "Acme", Slogan: "Build it better", Color: "#FF0000"}
	tplGlobex = entity.BrandTemplate{ID: "tpl-globex", BrandName: "Globex", Color: entity.DefaultBrandColor}
)

func newTemplates() *fakeTemplates {
	return &fakeTemplates{
		all:      []entity.BrandTemplate{tplAcme, tplGlobex},
		assigned: map[string][]entity.BrandTemplate{member.UserID: {tplAcme}},
	}
}

func TestBrandDirectory_LoadsInBackground(t *testing.T) {
	repo := newTemplates()
	repo.gate = make(chan struct{})
	dir, err := NewBrandDirectory(repo, 16, time.Minute, logger.New())
	require.NoError(t, err)

	templates, loaded := dir.Snapshot(member)
	assert.False(t, loaded)
	assert.Nil(t, templates)

	// A second call while loading does not start another fetch.
	_, loaded = dir.Snapshot(member)
	assert.False(t, loaded)

	close(repo.gate)
	dir.Wait()

	templates, loaded = dir.Snapshot(member)
	assert.True(t, loaded)
	assert.Equal(t, []entity.BrandTemplate{tplAcme}, templates)
	assert.Equal(t, 1, repo.callCount())
}

func TestBrandDirectory_AdminSeesEverything(t *testing.T) {
	repo := newTemplates()
	dir, err := NewBrandDirectory(repo, 16, time.Minute, logger.New())
	require.NoError(t, err)

	templates, err := dir.Refresh(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, templates, 2)

	templates, loaded := dir.Snapshot(entity.Identity{UserID: "admin-2", Role: entity.RoleAdmin})
	assert.True(t, loaded)
	assert.Len(t, templates, 2)
}

func TestBrandDirectory_UnassignedUserLoadsEmpty(t *testing.T) {
	dir, err := NewBrandDirectory(newTemplates(), 16, time.Minute, logger.New())
	require.NoError(t, err)

	dir.Snapshot(other)
	dir.Wait()

	templates, loaded := dir.Snapshot(other)
	assert.True(t, loaded)
	assert.Empty(t, templates)
}

func TestBrandDirectory_ServesStaleWhileRefreshing(t *testing.T) {
	repo := newTemplates()
	dir, err := NewBrandDirectory(repo, 16, time.Minute, logger.New())
	require.NoError(t, err)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dir.now = func() time.Time { return now }

	_, err = dir.Refresh(context.Background(), member)
	require.NoError(t, err)

	repo.mu.Lock()
	repo.assigned[member.UserID] = []entity.BrandTemplate{tplAcme, tplGlobex}
	repo.mu.Unlock()
	now = now.Add(2 * time.Minute)

	templates, loaded := dir.Snapshot(member)
	assert.True(t, loaded)
	assert.Len(t, templates, 1)

	dir.Wait()
	templates, _ = dir.Snapshot(member)
	assert.Len(t, templates, 2)
}

func TestBrandDirectory_FailedLoadStaysUnloaded(t *testing.T) {
	repo := newTemplates()
	repo.err = errors.New("db down")
	dir, err := NewBrandDirectory(repo, 16, time.Minute, logger.New())
	require.NoError(t, err)

	_, err = dir.Refresh(context.Background(), member)
	assert.Error(t, err)

	dir.Snapshot(member)
	dir.Wait()
	_, loaded := dir.Snapshot(member)
	assert.False(t, loaded)
}
