package composer

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"postcraft/pkg/ai"
	"postcraft/services/post/internal/entity"
)

type State string

const (
	StateEmpty      State = "empty"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// Session is one authoring session. It is safe for concurrent use; triggers
// are applied one at a time.
type Session struct {
	mu sync.Mutex

	id       string
	identity entity.Identity
	composer *Composer

	draft      entity.Draft
	state      State
	improving  bool
	generating bool
	// Latest request token issued per field group.
	textSeq  uint64
	imageSeq uint64

	notifications []entity.Notification
	// AI completions that arrived while a submit was in flight.
	deferred []func()

	lastActive time.Time
	closed     bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

type View struct {
	ID            string                `json:"id"`
	State         State                 `json:"state"`
	Draft         entity.Draft          `json:"draft"`
	Improving     bool                  `json:"improving"`
	Generating    bool                  `json:"generating"`
	TextLength    int                   `json:"text_length"`
	TextLimit     int                   `json:"text_limit"`
	OverLimit     bool                  `json:"over_limit"`
	BrandRequired bool                  `json:"brand_required"`
	Notifications []entity.Notification `json:"notifications"`
}

// DraftEdit carries a partial update; nil fields are left alone. An empty
// InlineBrand clears the inline brand.
type DraftEdit struct {
	Text            *string
	Hashtags        *string
	BrandTemplateID *string
	InlineBrand     *entity.BrandSnapshot
	ImagePrompt     *string
	VideoURL        *string
}

type Generation struct {
	Token  uint64 `json:"token"`
	Prompt string `json:"prompt"`
}

func (s *Session) ID() string { return s.id }

func (s *Session) Owner() entity.Identity { return s.identity }

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot reports the session without consuming notifications.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Drain reports the session and clears pending notifications.
func (s *Session) Drain() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.viewLocked()
	s.notifications = nil
	return v
}

func (s *Session) viewLocked() View {
	length := s.draft.TextLength()
	return View{
		ID:            s.id,
		State:         s.state,
		Draft:         s.draft.Clone(),
		Improving:     s.improving,
		Generating:    s.generating,
		TextLength:    length,
		TextLimit:     entity.TextLimit,
		OverLimit:     length > entity.TextLimit,
		BrandRequired: s.composer.BrandRequired(),
		Notifications: append([]entity.Notification(nil), s.notifications...),
	}
}

func (s *Session) guardLocked() error {
	if s.closed {
		return entity.ErrSessionClosed
	}
	if s.state == StateSubmitting {
		return entity.ErrSubmitInProgress
	}
	s.lastActive = s.composer.opts.Now()
	return nil
}

func (s *Session) Update(edit DraftEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(); err != nil {
		return err
	}

	if edit.Text != nil {
		s.draft.Text = *edit.Text
	}
	if edit.Hashtags != nil {
		s.draft.Hashtags = *edit.Hashtags
	}
	if edit.BrandTemplateID != nil {
		s.draft.BrandTemplateID = *edit.BrandTemplateID
	}
	if edit.InlineBrand != nil {
		if edit.InlineBrand.IsZero() {
			s.draft.InlineBrand = nil
		} else {
			brand := *edit.InlineBrand
			s.draft.InlineBrand = &brand
		}
	}
	if edit.ImagePrompt != nil {
		s.draft.ImagePrompt = *edit.ImagePrompt
	}
	if edit.VideoURL != nil {
		s.draft.VideoURL = *edit.VideoURL
	}
	s.state = StateEditing
	return nil
}

func (s *Session) TogglePlatform(p entity.Platform) ([]entity.Platform, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(); err != nil {
		return nil, err
	}
	s.draft.TogglePlatform(p)
	s.state = StateEditing
	return append([]entity.Platform(nil), s.draft.Platforms...), nil
}

// ImproveWriting starts a rewrite of the current text and returns its token.
// It does not wait for the result.
func (s *Session) ImproveWriting() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(s.draft.Text) == "" {
		return 0, entity.NewValidationError(entity.EmptyContent, "text")
	}

	s.textSeq++
	token := s.textSeq
	s.improving = true
	s.state = StateEditing

	req := ai.ImproveRequest{Text: s.draft.Text, Platform: s.draft.PlatformLabel()}
	s.wg.Add(1)
	go s.runImprove(token, req)
	return token, nil
}

func (s *Session) runImprove(token uint64, req ai.ImproveRequest) {
	defer s.wg.Done()
	ctx, cancel := context.WithTimeout(s.ctx, s.composer.opts.Timeout)
	defer cancel()

	res, err := s.composer.text.ImproveWriting(ctx, req)
	s.complete(func() { s.applyImprove(token, res, err) })
}

func (s *Session) applyImprove(token uint64, res *ai.ImproveResult, err error) {
	if token != s.textSeq {
		s.composer.log.Debug("session %s: dropping stale improve response %d (latest %d)", s.id, token, s.textSeq)
		return
	}
	s.improving = false

	if err != nil || res == nil {
		s.composer.log.Warn("session %s: improve writing failed: %v", s.id, err)
		s.notifyLocked(entity.Notification{
			Level:   entity.LevelError,
			Title:   "AI Error",
			Message: "Could not improve writing. Please try again.",
			Kind:    entity.TextImprovementFailed,
			Token:   token,
		})
		return
	}

	s.draft.Text = res.ImprovedText
	s.draft.Hashtags = res.Hashtags
	s.notifyLocked(entity.Notification{
		Level:   entity.LevelSuccess,
		Title:   "Content Improved",
		Message: "Your post has been enhanced with AI.",
		Token:   token,
	})
}

// GenerateImage starts an image generation. The prompt is the draft's own
// prompt when set, otherwise one is built from the text and brand and written
// back to the draft. Any previous image is cleared.
func (s *Session) GenerateImage(ctx context.Context) (*Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.draft.Text) == "" {
		return nil, entity.NewValidationError(entity.EmptyContent, "text")
	}

	brand, err := s.resolveBrandLocked(ctx)
	if err != nil {
		return nil, err
	}

	prompt := s.draft.ImagePrompt
	if strings.TrimSpace(prompt) == "" {
		prompt = BuildImagePrompt(s.draft.Text, brand)
		s.draft.ImagePrompt = prompt
	}

	s.draft.GeneratedImageRef = ""
	s.imageSeq++
	token := s.imageSeq
	s.generating = true
	s.state = StateEditing

	s.wg.Add(1)
	go s.runGenerate(token, prompt)
	return &Generation{Token: token, Prompt: prompt}, nil
}

func (s *Session) runGenerate(token uint64, prompt string) {
	defer s.wg.Done()
	ctx, cancel := context.WithTimeout(s.ctx, s.composer.opts.Timeout)
	defer cancel()

	ref, err := s.composer.image.GenerateImage(ctx, prompt)
	s.complete(func() { s.applyImage(token, ref, err) })
}

func (s *Session) applyImage(token uint64, ref string, err error) {
	if token != s.imageSeq {
		s.composer.log.Debug("session %s: dropping stale image response %d (latest %d)", s.id, token, s.imageSeq)
		return
	}
	s.generating = false

	if err != nil || ref == "" {
		s.composer.log.Warn("session %s: image generation failed: %v", s.id, err)
		s.notifyLocked(entity.Notification{
			Level:   entity.LevelError,
			Title:   "Image Generation Error",
			Message: "Could not generate image. Please try again.",
			Kind:    entity.ImageGenerationFailed,
			Token:   token,
		})
		return
	}

	s.draft.GeneratedImageRef = ref
	s.notifyLocked(entity.Notification{
		Level:   entity.LevelSuccess,
		Title:   "Image Generated",
		Message: "Your new image is ready!",
		Token:   token,
	})
}

// complete applies an AI result under the session lock. While a submit is in
// flight the result is held back until the submit settles.
func (s *Session) complete(apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.state == StateSubmitting {
		s.deferred = append(s.deferred, apply)
		return
	}
	apply()
}

// Submit validates the draft and hands a frozen post to the store. On
// success the draft is reset and outstanding AI requests are superseded. On
// failure the draft is left exactly as it was.
func (s *Session) Submit(ctx context.Context) (*entity.Post, error) {
	s.mu.Lock()
	if err := s.guardLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.composer.opts.Policy == PolicyBlock && (s.improving || s.generating) {
		s.mu.Unlock()
		return nil, entity.ErrOperationPending
	}

	brand, err := s.validateLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	post := s.buildPostLocked(brand)
	s.state = StateSubmitting
	s.mu.Unlock()

	id, storeErr := s.composer.store.Create(ctx, post)

	s.mu.Lock()
	defer s.mu.Unlock()
	deferred := s.deferred
	s.deferred = nil

	if storeErr != nil {
		s.state = StateEditing
		for _, apply := range deferred {
			apply()
		}
		s.composer.log.Error("session %s: persisting post failed: %v", s.id, storeErr)
		return nil, &entity.RemoteServiceError{Kind: entity.PersistenceFailed, Err: storeErr}
	}

	if id != "" {
		post.ID = id
	}
	s.draft = entity.NewDraft()
	s.textSeq++
	s.imageSeq++
	s.improving = false
	s.generating = false
	s.state = StateSubmitted
	s.composer.log.Info("session %s: submitted post %s for %s", s.id, post.ID, s.identity.UserID)
	return post, nil
}

func (s *Session) validateLocked(ctx context.Context) (*entity.BrandSnapshot, error) {
	if len(s.draft.Platforms) == 0 {
		return nil, entity.NewValidationError(entity.NoPlatformSelected, "platforms")
	}
	if strings.TrimSpace(s.draft.Text) == "" {
		return nil, entity.NewValidationError(entity.EmptyContent, "text")
	}
	brand, err := s.resolveBrandLocked(ctx)
	if err != nil {
		return nil, err
	}
	if video := strings.TrimSpace(s.draft.VideoURL); video != "" && !isAbsoluteURL(video) {
		return nil, entity.NewValidationError(entity.InvalidURL, "video_url")
	}
	return brand, nil
}

func (s *Session) resolveBrandLocked(ctx context.Context) (*entity.BrandSnapshot, error) {
	brand, err := s.composer.brands.Resolve(ctx, s.identity, s.draft.Clone())
	if err != nil {
		return nil, err
	}
	if brand == nil && s.composer.brands.Required() {
		return nil, entity.NewValidationError(entity.NoBrandSelected, "brand_template_id")
	}
	return brand, nil
}

func (s *Session) buildPostLocked(brand *entity.BrandSnapshot) *entity.Post {
	d := s.draft.Clone()
	post := &entity.Post{
		ID:          s.composer.opts.NewID(),
		OwnerID:     s.identity.UserID,
		Platforms:   d.Platforms,
		Text:        d.Text,
		Hashtags:    d.Hashtags,
		Brand:       brand,
		ImageURL:    d.GeneratedImageRef,
		ImagePrompt: d.ImagePrompt,
		VideoURL:    strings.TrimSpace(d.VideoURL),
		SubmittedAt: s.composer.opts.Now().UTC(),
	}
	if brand != nil {
		post.BrandTemplateID = brand.TemplateID
	}
	return post
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func (s *Session) notifyLocked(n entity.Notification) {
	n.At = s.composer.opts.Now()
	s.notifications = append(s.notifications, n)
	if over := len(s.notifications) - maxNotifications; over > 0 {
		s.notifications = s.notifications[over:]
	}
}

// Wait blocks until every AI call started so far has reported back.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels outstanding AI calls. Later triggers fail with
// ErrSessionClosed and late results are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.deferred = nil
	s.mu.Unlock()
	s.cancel()
}
