package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port"
)

func listingPayload(id, title string) map[string]any {
	return map[string]any{
		"id":    id,
		"title": title,
		"price": "1500000",
		"images": []any{
			map[string]any{"id": "img-1", "url": "https://cdn.example.com/1.jpg", "isPrimary": true},
			map[string]any{"id": "img-2", "url": "https://cdn.example.com/2.jpg"},
		},
		"addressParts": map[string]any{"city": "Puri", "state": "Odisha"},
	}
}

type fakeAPI struct {
	mu sync.Mutex

	listing any
	getErr  error
	onGet   func()

	list    any
	similar any

	saved   any
	saveErr error
	created []port.ListingSubmission
	updated map[string]port.ListingSubmission

	deleted   []string
	deleteErr error

	interests       []domain.InterestRequest
	interestPayload any
	interestQueries [][2]int
}

func (f *fakeAPI) GetListing(ctx context.Context, id string) (any, error) {
	if f.onGet != nil {
		f.onGet()
	}
	return f.listing, f.getErr
}

func (f *fakeAPI) ListListings(ctx context.Context, query domain.ListingQuery) (any, error) {
	return f.list, f.getErr
}

func (f *fakeAPI) GetSimilar(ctx context.Context, id string) (any, error) {
	return f.similar, f.getErr
}

func (f *fakeAPI) CreateListing(ctx context.Context, sub port.ListingSubmission) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, sub)
	return f.saved, f.saveErr
}

func (f *fakeAPI) UpdateListing(ctx context.Context, id string, sub port.ListingSubmission) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updated == nil {
		f.updated = map[string]port.ListingSubmission{}
	}
	f.updated[id] = sub
	return f.saved, f.saveErr
}

func (f *fakeAPI) DeleteListing(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeAPI) CreateInterest(ctx context.Context, req domain.InterestRequest) (any, error) {
	f.interests = append(f.interests, req)
	return nil, f.saveErr
}

func (f *fakeAPI) ListInterests(ctx context.Context, listingID string, page, pageSize int) (any, error) {
	f.interestQueries = append(f.interestQueries, [2]int{page, pageSize})
	return f.interestPayload, f.getErr
}

type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]*editsession.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]*editsession.Session{}}
}

func (s *fakeStore) Create(ctx context.Context, session *editsession.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *fakeStore) Get(ctx context.Context, id string) (*editsession.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *fakeStore) Update(ctx context.Context, id string, fn func(*editsession.Session) error) (*editsession.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	next := session.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.sessions[id] = next
	return next.Clone(), nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) (*editsession.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return session, nil
}

func (s *fakeStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

type fakeBlobs struct {
	mu       sync.Mutex
	next     int
	putErr   error
	stored   map[string]struct{}
	released []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{stored: map[string]struct{}{}}
}

func (b *fakeBlobs) Put(ctx context.Context, name, contentType string, r io.Reader) (media.Upload, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.putErr != nil {
		return media.Upload{}, b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return media.Upload{}, err
	}
	b.next++
	id := fmt.Sprintf("blob-%d", b.next)
	b.stored[id] = struct{}{}
	return media.Upload{BlobID: id, Name: name, ContentType: contentType, Size: int64(len(data))}, nil
}

func (b *fakeBlobs) Open(ctx context.Context, blobID string) (io.ReadCloser, error) {
	return nil, domain.ErrBlobNotFound
}

func (b *fakeBlobs) Release(ctx context.Context, blobIDs ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range blobIDs {
		delete(b.stored, id)
		b.released = append(b.released, id)
	}
	return nil
}

type fakeAudit struct {
	entries []domain.PatchAuditEntry
	err     error
	limit   int
}

func (a *fakeAudit) Save(ctx context.Context, entry domain.PatchAuditEntry) error {
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, entry)
	return nil
}

func (a *fakeAudit) ListByListing(ctx context.Context, listingID string, limit int) ([]domain.PatchAuditEntry, error) {
	a.limit = limit
	if a.err != nil {
		return nil, a.err
	}
	var out []domain.PatchAuditEntry
	for _, e := range a.entries {
		if e.ListingID == listingID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeEvents struct {
	events []domain.ListingChangedEvent
	err    error
}

func (e *fakeEvents) PublishListingChanged(ctx context.Context, event domain.ListingChangedEvent) error {
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, event)
	return nil
}
