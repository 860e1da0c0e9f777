package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
)

func TestEditSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewEditSessionStore(time.Hour, nil)

	require.NoError(t, store.Create(ctx, editsession.NewCreate("s1", time.Now())))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	got.Values.Title = "mutated copy"

	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, again.Values.Title)

	updated, err := store.Update(ctx, "s1", func(s *editsession.Session) error {
		v := s.Values
		v.Title = "Saved"
		return s.SetValues(v, time.Now())
	})
	require.NoError(t, err)
	assert.Equal(t, "Saved", updated.Values.Title)

	_, err = store.Update(ctx, "s1", func(s *editsession.Session) error {
		s.Values.Title = "discarded"
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")

	current, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Saved", current.Values.Title)

	deleted, err := store.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Saved", deleted.Values.Title)

	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Update(ctx, "s1", func(*editsession.Session) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Delete(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEditSessionStoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewEditSessionStore(time.Hour, nil)
	require.NoError(t, store.Create(ctx, editsession.NewEdit("s1", "lst-1", time.Now())))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "s1", func(s *editsession.Session) error {
				s.BeginLoad(time.Now())
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(50), s.Generation)
}

func TestEditSessionStoreEvictsExpired(t *testing.T) {
	ctx := context.Background()
	var evicted []string
	store := NewEditSessionStore(time.Minute, func(s *editsession.Session) {
		evicted = append(evicted, s.ID)
	})

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Create(ctx, editsession.NewCreate("old", now)))
	now = now.Add(50 * time.Second)
	require.NoError(t, store.Create(ctx, editsession.NewCreate("fresh", now)))

	now = now.Add(20 * time.Second)
	assert.Equal(t, 1, store.EvictExpired())
	assert.Equal(t, []string{"old"}, evicted)
	assert.Equal(t, 1, store.Len())

	_, err := store.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestEditSessionStoreZeroTTLNeverEvicts(t *testing.T) {
	store := NewEditSessionStore(0, nil)
	require.NoError(t, store.Create(context.Background(), editsession.NewCreate("s1", time.Now())))
	assert.Equal(t, 0, store.EvictExpired())
}

func TestPatchAuditRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPatchAuditRepository(3)

	for _, id := range []string{"1", "2", "3", "4"} {
		require.NoError(t, repo.Save(ctx, domain.PatchAuditEntry{ID: id, ListingID: "lst-1"}))
	}
	require.NoError(t, repo.Save(ctx, domain.PatchAuditEntry{ID: "x", ListingID: "lst-2"}))

	entries, err := repo.ListByListing(ctx, "lst-1", 10)
	require.NoError(t, err)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"4", "3"}, ids)

	limited, err := repo.ListByListing(ctx, "lst-1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "4", limited[0].ID)

	none, err := repo.ListByListing(ctx, "nope", 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
