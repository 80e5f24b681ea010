package composer

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"postcraft/pkg/ai"
	"postcraft/pkg/logger"
	"postcraft/services/post/internal/entity"
)

type textReply struct {
	res *ai.ImproveResult
	err error
}

type textCall struct {
	req   ai.ImproveRequest
	reply chan textReply
}

// fakeText parks every request until the test answers it.
type fakeText struct {
	calls chan textCall
}

func newFakeText() *fakeText {
	return &fakeText{calls: make(chan textCall, 16)}
}

func (f *fakeText) ImproveWriting(ctx context.Context, req ai.ImproveRequest) (*ai.ImproveResult, error) {
	c := textCall{req: req, reply: make(chan textReply, 1)}
	f.calls <- c
	select {
	case r := <-c.reply:
		return r.res, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type imageReply struct {
	ref string
	err error
}

type imageCall struct {
	prompt string
	reply  chan imageReply
}

type fakeImage struct {
	calls chan imageCall
}

func newFakeImage() *fakeImage {
	return &fakeImage{calls: make(chan imageCall, 16)}
}

func (f *fakeImage) GenerateImage(ctx context.Context, prompt string) (string, error) {
	c := imageCall{prompt: prompt, reply: make(chan imageReply, 1)}
	f.calls <- c
	select {
	case r := <-c.reply:
		return r.ref, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type fakeStore struct {
	mu    sync.Mutex
	posts []*entity.Post
	err   error
	// When set, Create signals entered and then waits for gate.
	entered chan struct{}
	gate    chan struct{}
}

func (f *fakeStore) Create(_ context.Context, post *entity.Post) (string, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.posts = append(f.posts, post)
	return post.ID, nil
}

func (f *fakeStore) ListByOwner(ownerID string) []*entity.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Post
	for _, p := range f.posts {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out
}

type fakeDirectory struct {
	mu        sync.Mutex
	templates []entity.BrandTemplate
	loaded    bool
}

func (f *fakeDirectory) Snapshot(entity.Identity) ([]entity.BrandTemplate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.BrandTemplate(nil), f.templates...), f.loaded
}

var acme = entity.BrandTemplate{
	ID:        "tpl-acme",
	BrandName: "Acme",
	Slogan:    "Build it better",
	Color:     "#FF0000",
}

type harness struct {
	text     *fakeText
	image    *fakeImage
	store    *fakeStore
	dir      *fakeDirectory
	composer *Composer
	clock    *fakeClock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type harnessOption func(*harness, *Options, *BrandResolver)

func withPolicy(p SubmitPolicy) harnessOption {
	return func(_ *harness, o *Options, _ *BrandResolver) { o.Policy = p }
}

func withInlineBrands() harnessOption {
	return func(_ *harness, _ *Options, r *BrandResolver) { *r = InlineResolver{} }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	h := &harness{
		text:  newFakeText(),
		image: newFakeImage(),
		store: &fakeStore{},
		dir:   &fakeDirectory{templates: []entity.BrandTemplate{acme}, loaded: true},
		clock: &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	var resolver BrandResolver = NewDirectoryResolver(h.dir)
	o := Options{Timeout: 5 * time.Second, Now: h.clock.Now}
	for _, opt := range opts {
		opt(h, &o, &resolver)
	}
	h.composer = New(h.text, h.image, h.store, resolver, logger.New(), o)
	return h
}

func (h *harness) session(t *testing.T) *Session {
	t.Helper()
	s := h.composer.NewSession("sess-1", entity.Identity{UserID: "user-1", Role: entity.RoleMember})
	t.Cleanup(s.Close)
	return s
}

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

func ptr[T any](v T) *T { return &v }

// ready fills a draft that passes validation in directory mode.
func ready(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Update(DraftEdit{Text: ptr("New product launch"), BrandTemplateID: ptr(acme.ID)}); err != nil {
		t.Fatalf("update: %v", err)
	}
}
