// Package memstore - хранилища в памяти процесса: открытые сессии
// редактирования и журнал патчей для запуска без базы.
package memstore

import (
	"context"
	"sync"
	"time"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
)

// EvictFunc вызывается для каждой сессии, удаленной по истечении TTL.
type EvictFunc func(s *editsession.Session)

type sessionEntry struct {
	mu      sync.Mutex
	session *editsession.Session
	touched time.Time
}

// EditSessionStore хранит сессии в памяти. Update одной сессии
// сериализуется ее собственной блокировкой, разные сессии не мешают друг другу.
type EditSessionStore struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	onEvict EvictFunc
	now     func() time.Time
}

func NewEditSessionStore(ttl time.Duration, onEvict EvictFunc) *EditSessionStore {
	return &EditSessionStore{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		onEvict: onEvict,
		now:     time.Now,
	}
}

func (s *EditSessionStore) Create(ctx context.Context, session *editsession.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID] = &sessionEntry{session: session.Clone(), touched: s.now()}
	return nil
}

func (s *EditSessionStore) entry(id string) (*sessionEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

func (s *EditSessionStore) Get(ctx context.Context, id string) (*editsession.Session, error) {
	e, ok := s.entry(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, domain.ErrSessionNotFound
	}
	e.touched = s.now()
	return e.session.Clone(), nil
}

// Update применяет fn к копии сессии и сохраняет копию, только если fn не вернула ошибку.
func (s *EditSessionStore) Update(ctx context.Context, id string, fn func(*editsession.Session) error) (*editsession.Session, error) {
	e, ok := s.entry(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, domain.ErrSessionNotFound
	}

	next := e.session.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	e.session = next
	e.touched = s.now()
	return next.Clone(), nil
}

func (s *EditSessionStore) Delete(ctx context.Context, id string) (*editsession.Session, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	session := e.session
	e.session = nil
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Len - количество открытых сессий.
func (s *EditSessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// EvictExpired удаляет сессии, к которым не обращались дольше TTL,
// и возвращает их количество.
func (s *EditSessionStore) EvictExpired() int {
	if s.ttl <= 0 {
		return 0
	}
	deadline := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*sessionEntry
	for id, e := range s.entries {
		e.mu.Lock()
		stale := e.touched.Before(deadline)
		e.mu.Unlock()
		if stale {
			expired = append(expired, e)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, e := range expired {
		e.mu.Lock()
		session := e.session
		e.session = nil
		e.mu.Unlock()
		if session != nil && s.onEvict != nil {
			s.onEvict(session)
		}
	}
	return len(expired)
}

// RunJanitor периодически удаляет просроченные сессии, пока ctx не отменен.
func (s *EditSessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictExpired()
		}
	}
}
