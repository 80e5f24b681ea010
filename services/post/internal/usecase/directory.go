package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"postcraft/pkg/logger"
	"postcraft/services/post/internal/entity"
	"postcraft/services/post/internal/repo/persistent"

	lru "github.com/hashicorp/golang-lru/v2"
)

const directoryLoadTimeout = 10 * time.Second

type directoryEntry struct {
	templates []entity.BrandTemplate
	fetchedAt time.Time
}

// BrandDirectory keeps per-identity snapshots of the templates a user may
// pick. Snapshot never blocks: a missing snapshot starts a background load
// and reports loaded=false, a stale one is served while it is reloaded.
type BrandDirectory struct {
	templates persistent.TemplateRepository
	cache     *lru.Cache[string, directoryEntry]
	ttl       time.Duration
	now       func() time.Time
	log       *logger.Logger

	mu       sync.Mutex
	inflight map[string]bool
	wg       sync.WaitGroup
}

func NewBrandDirectory(templates persistent.TemplateRepository, size int, ttl time.Duration, log *logger.Logger) (*BrandDirectory, error) {
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New[string, directoryEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory cache: %w", err)
	}
	return &BrandDirectory{
		templates: templates,
		cache:     cache,
		ttl:       ttl,
		now:       time.Now,
		log:       log,
		inflight:  make(map[string]bool),
	}, nil
}

// Admins share one snapshot of every template.
func directoryKey(identity entity.Identity) string {
	if identity.IsAdmin() {
		return "admin"
	}
	return "user:" + identity.UserID
}

func (d *BrandDirectory) Snapshot(identity entity.Identity) ([]entity.BrandTemplate, bool) {
	entry, ok := d.cache.Get(directoryKey(identity))
	if !ok {
		d.RefreshAsync(identity)
		return nil, false
	}
	if d.ttl > 0 && d.now().Sub(entry.fetchedAt) > d.ttl {
		d.RefreshAsync(identity)
	}
	return append([]entity.BrandTemplate(nil), entry.templates...), true
}

// Refresh loads the identity's templates now and replaces the snapshot.
func (d *BrandDirectory) Refresh(ctx context.Context, identity entity.Identity) ([]entity.BrandTemplate, error) {
	var (
		templates []entity.BrandTemplate
		err       error
	)
	if identity.IsAdmin() {
		templates, err = d.templates.ListAll(ctx)
	} else {
		templates, err = d.templates.ListAssigned(ctx, identity.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load brand templates: %w", err)
	}
	if templates == nil {
		templates = []entity.BrandTemplate{}
	}
	d.cache.Add(directoryKey(identity), directoryEntry{templates: templates, fetchedAt: d.now()})
	return append([]entity.BrandTemplate(nil), templates...), nil
}

// RefreshAsync starts a background load unless one is already running for
// the same identity.
func (d *BrandDirectory) RefreshAsync(identity entity.Identity) {
	key := directoryKey(identity)
	d.mu.Lock()
	if d.inflight[key] {
		d.mu.Unlock()
		return
	}
	d.inflight[key] = true
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer func() {
			d.mu.Lock()
			delete(d.inflight, key)
			d.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), directoryLoadTimeout)
		defer cancel()
		if _, err := d.Refresh(ctx, identity); err != nil {
			d.log.Error("[DIRECTORY] Load for %s failed: %v", key, err)
		}
	}()
}

// Wait blocks until background loads started so far have finished.
func (d *BrandDirectory) Wait() {
	d.wg.Wait()
}
