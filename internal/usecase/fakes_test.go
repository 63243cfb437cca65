package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"bookswap/internal/domain/entity"
	"bookswap/pkg/errors"
)

type fakeImageStore struct {
	mu         sync.Mutex
	uploads    []string
	destroyed  []string
	failUpload func(source string) error
	failDelete func(publicID string) error
	emptyRef   bool
	seq        int
}

func (s *fakeImageStore) Upload(ctx context.Context, source string) (*entity.UploadedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUpload != nil {
		if err := s.failUpload(source); err != nil {
			return nil, err
		}
	}
	s.uploads = append(s.uploads, source)
	if s.emptyRef {
		return &entity.UploadedImage{}, nil
	}

	s.seq++
	id := fmt.Sprintf("books/%d", s.seq)
	if strings.HasPrefix(source, "img:") {
		id = "books/" + strings.TrimPrefix(source, "img:")
	}
	return &entity.UploadedImage{URL: "https://cdn.test/" + id, PublicID: id}, nil
}

func (s *fakeImageStore) Destroy(ctx context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDelete != nil {
		if err := s.failDelete(publicID); err != nil {
			return err
		}
	}
	s.destroyed = append(s.destroyed, publicID)
	return nil
}

func (s *fakeImageStore) destroyedSorted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]string(nil), s.destroyed...)
	sort.Strings(out)
	return out
}

type fakeListingRepository struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	seq      int
	creates  int
	failList error
}

func newFakeListingRepository() *fakeListingRepository {
	return &fakeListingRepository{listings: map[string]*entity.Listing{}}
}

func (r *fakeListingRepository) Create(ctx context.Context, listing *entity.Listing) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.creates++
	listing.ID = fmt.Sprintf("b%d", r.seq)
	stored := *listing
	stored.Normalize()
	r.listings[listing.ID] = &stored
	return listing.ID, nil
}

func (r *fakeListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Book", nil)
	}
	copied := *l
	return &copied, nil
}

func (r *fakeListingRepository) ListAll(ctx context.Context) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failList != nil {
		return nil, r.failList
	}
	out := []*entity.Listing{}
	for _, l := range r.listings {
		copied := *l
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*entity.Listing{}
	for _, l := range r.listings {
		if l.OwnerID == ownerID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeListingRepository) Update(ctx context.Context, id string, patch entity.ListingPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Book", nil)
	}
	patch.Apply(l)
	return nil
}

func (r *fakeListingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepository) put(l *entity.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.Normalize()
	r.listings[l.ID] = l
}

type fakeIdentityProvider struct {
	sessions     map[string]*entity.Identity
	users        map[string]*entity.Identity
	idTokens     map[string]string
	revoked      []string
	deleted      []string
	lastExpiry   time.Duration
	failRevoke   error
	failUpdate   error
	failDelete   error
	failGetUser  error
	lastUpdate   entity.IdentityUpdate
	updateCalled bool
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{
		sessions: map[string]*entity.Identity{},
		users:    map[string]*entity.Identity{},
		idTokens: map[string]string{},
	}
}

func (p *fakeIdentityProvider) VerifySession(ctx context.Context, cookie string) (*entity.Identity, error) {
	identity, ok := p.sessions[cookie]
	if !ok {
		return nil, fmt.Errorf("session cookie has been revoked")
	}
	return identity, nil
}

func (p *fakeIdentityProvider) CreateSession(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	uid, ok := p.idTokens[idToken]
	if !ok {
		return "", fmt.Errorf("invalid id token")
	}
	p.lastExpiry = expiresIn
	cookie := "cookie-" + uid
	p.sessions[cookie] = &entity.Identity{UID: uid}
	return cookie, nil
}

func (p *fakeIdentityProvider) RevokeSessions(ctx context.Context, uid string) error {
	if p.failRevoke != nil {
		return p.failRevoke
	}
	p.revoked = append(p.revoked, uid)
	return nil
}

func (p *fakeIdentityProvider) GetUser(ctx context.Context, uid string) (*entity.Identity, error) {
	if p.failGetUser != nil {
		return nil, p.failGetUser
	}
	u, ok := p.users[uid]
	if !ok {
		return nil, fmt.Errorf("no user record for %s", uid)
	}
	return u, nil
}

func (p *fakeIdentityProvider) UpdateUser(ctx context.Context, uid string, update entity.IdentityUpdate) (*entity.Identity, error) {
	p.updateCalled = true
	p.lastUpdate = update
	if p.failUpdate != nil {
		return nil, p.failUpdate
	}
	u := p.users[uid]
	if u == nil {
		u = &entity.Identity{UID: uid}
		p.users[uid] = u
	}
	if update.Email != "" {
		u.Email = update.Email
	}
	if update.DisplayName != "" {
		u.DisplayName = update.DisplayName
	}
	return u, nil
}

func (p *fakeIdentityProvider) DeleteUser(ctx context.Context, uid string) error {
	if p.failDelete != nil {
		return p.failDelete
	}
	p.deleted = append(p.deleted, uid)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.ListingEvent
	err    error
}

func (p *recordingPublisher) PublishListingEvent(ctx context.Context, event entity.ListingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type countingMetrics struct {
	mu                          sync.Mutex
	uploads, uploadFailures     int
	deletions, deletionFailures int
}

func (m *countingMetrics) ObserveUpload(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.uploads++
	} else {
		m.uploadFailures++
	}
}

func (m *countingMetrics) ObserveDelete(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.deletions++
	} else {
		m.deletionFailures++
	}
}
