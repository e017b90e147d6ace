package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User // by ID
	nextID    int
	createErr error
	listErr   error
	findErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("%024x", r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) UpdateCredentials(_ context.Context, id, email, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && other.Email == email {
			return domain.ErrUserExists
		}
	}
	u.Email = email
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// ---------------------------------------------------------------------------
// Audit recorder
// ---------------------------------------------------------------------------

type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (a *stubAudit) Record(e domain.AuthEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *stubAudit) types() []domain.AuthEventType {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuthEventType, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Type)
	}
	return out
}

// ---------------------------------------------------------------------------
// Message repository and dedup
// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	msgs      []*domain.Message
	createErr error
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) error {
	if r.createErr != nil {
		return r.createErr
	}
	m.ID = fmt.Sprintf("%024x", len(r.msgs)+1)
	clone := *m
	r.msgs = append(r.msgs, &clone)
	return nil
}

func (r *stubMessageRepo) List(_ context.Context) ([]*domain.Message, error) {
	out := make([]*domain.Message, len(r.msgs))
	copy(out, r.msgs)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubMessageRepo) Delete(_ context.Context, id string) error {
	for i, m := range r.msgs {
		if m.ID == id {
			r.msgs = append(r.msgs[:i], r.msgs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubDedup struct {
	seen       map[string]bool
	err        error
	releaseErr error
	released   []string
}

func (d *stubDedup) Claim(_ context.Context, fp string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	if d.seen[fp] {
		return false, nil
	}
	d.seen[fp] = true
	return true, nil
}

func (d *stubDedup) Release(_ context.Context, fp string) error {
	d.released = append(d.released, fp)
	if d.releaseErr != nil {
		return d.releaseErr
	}
	delete(d.seen, fp)
	return nil
}

// ---------------------------------------------------------------------------
// Project repository
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	byID   map[string]*domain.Project
	nextID int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.nextID++
	p.ID = fmt.Sprintf("%024x", r.nextID)
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id string, p *domain.Project) (*domain.Project, error) {
	existing, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := *p
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	r.byID[id] = &updated
	clone := updated
	return &clone, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Carousel repository and presigner
// ---------------------------------------------------------------------------

type stubCarouselRepo struct {
	imgs []*domain.CarouselImage
}

func (r *stubCarouselRepo) Create(_ context.Context, img *domain.CarouselImage) error {
	img.ID = fmt.Sprintf("%024x", len(r.imgs)+1)
	clone := *img
	r.imgs = append(r.imgs, &clone)
	return nil
}

func (r *stubCarouselRepo) List(_ context.Context) ([]*domain.CarouselImage, error) {
	out := make([]*domain.CarouselImage, len(r.imgs))
	copy(out, r.imgs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *stubCarouselRepo) Delete(_ context.Context, id string) error {
	for i, img := range r.imgs {
		if img.ID == id {
			r.imgs = append(r.imgs[:i], r.imgs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubPresigner struct {
	lastKey         string
	lastContentType string
	lastTTL         time.Duration
	err             error
	// stored maps object keys to their Content-Type.
	stored  map[string]string
	headErr error
	heads   []string
}

func (p *stubPresigner) PresignPut(_ context.Context, key, contentType string, ttl time.Duration) (ports.PresignedPut, error) {
	if p.err != nil {
		return ports.PresignedPut{}, p.err
	}
	p.lastKey, p.lastContentType, p.lastTTL = key, contentType, ttl
	return ports.PresignedPut{
		URL:     "https://s3.example.test/bucket/" + key + "?X-Amz-Signature=abc",
		Headers: map[string]string{"Content-Type": contentType},
	}, nil
}

func (p *stubPresigner) ContentType(_ context.Context, key string) (string, error) {
	p.heads = append(p.heads, key)
	if p.headErr != nil {
		return "", p.headErr
	}
	ct, ok := p.stored[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return ct, nil
}

func (p *stubPresigner) PublicURL(key string) string {
	return "https://cdn.example.test/" + key
}

var (
	_ ports.UserRepository     = (*stubUserRepo)(nil)
	_ ports.MessageRepository  = (*stubMessageRepo)(nil)
	_ ports.ProjectRepository  = (*stubProjectRepo)(nil)
	_ ports.CarouselRepository = (*stubCarouselRepo)(nil)
	_ ports.UploadPresigner    = (*stubPresigner)(nil)
)
