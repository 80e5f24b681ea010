// Package composer holds the per-session post authoring workflow: draft
// edits, the two background AI operations and submission.
//
// Every trigger on a Session runs under the session mutex. AI calls run on
// their own goroutines and report back through the same mutex; a response is
// applied only if its request token is still the latest for its field.
package composer

import (
	"context"
	"time"

	"postcraft/pkg/ai"
	"postcraft/pkg/logger"
	"postcraft/services/post/internal/entity"

	"github.com/google/uuid"
)

type TextService interface {
	ImproveWriting(ctx context.Context, req ai.ImproveRequest) (*ai.ImproveResult, error)
}

type ImageService interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type PostStore interface {
	Create(ctx context.Context, post *entity.Post) (string, error)
}

// BrandResolver turns the brand reference held by a draft into a snapshot.
// A nil snapshot with a nil error means no brand is selected.
type BrandResolver interface {
	Required() bool
	Resolve(ctx context.Context, identity entity.Identity, draft entity.Draft) (*entity.BrandSnapshot, error)
}

type SubmitPolicy string

const (
	// PolicyAllow submits with whatever AI results have landed so far.
	PolicyAllow SubmitPolicy = "allow"
	// PolicyBlock refuses to submit while an AI operation is running.
	PolicyBlock SubmitPolicy = "block"
)

func ParseSubmitPolicy(s string) SubmitPolicy {
	if SubmitPolicy(s) == PolicyBlock {
		return PolicyBlock
	}
	return PolicyAllow
}

type Options struct {
	Policy  SubmitPolicy
	Timeout time.Duration
	Now     func() time.Time
	NewID   func() string
}

const maxNotifications = 20

type Composer struct {
	text   TextService
	image  ImageService
	store  PostStore
	brands BrandResolver
	log    *logger.Logger
	opts   Options
}

func New(text TextService, image ImageService, store PostStore, brands BrandResolver, log *logger.Logger, opts Options) *Composer {
	if opts.Policy == "" {
		opts.Policy = PolicyAllow
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	return &Composer{
		text:   text,
		image:  image,
		store:  store,
		brands: brands,
		log:    log.With("component", "composer"),
		opts:   opts,
	}
}

func (c *Composer) BrandRequired() bool {
	return c.brands.Required()
}

// NewSession mounts an empty draft owned by identity.
func (c *Composer) NewSession(id string, identity entity.Identity) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:         id,
		identity:   identity,
		composer:   c,
		draft:      entity.NewDraft(),
		state:      StateEmpty,
		lastActive: c.opts.Now(),
		ctx:        ctx,
		cancel:     cancel,
	}
}
