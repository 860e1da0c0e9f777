// Package editsession - сессия редактирования объявления в админке:
// значения формы, состояние медиа и снимок исходного объявления.
package editsession

import (
	"time"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/formstate"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/mergepatch"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Session - состояние одной сессии. Изменяется только через методы,
// которые заменяют поля целиком, поэтому поверхностная копия безопасна для чтения.
type Session struct {
	ID        string
	ListingID string
	Mode      Mode

	// Generation растет с каждой загрузкой. Ответ загрузки со старым
	// поколением отбрасывается.
	Generation uint64
	Loaded     bool

	Listing  *domain.Listing
	Baseline formstate.Snapshot
	Values   formstate.Values
	Media    media.State

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCreate открывает сессию создания. Базы нет, патчем станет весь снимок.
func NewCreate(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Mode:      ModeCreate,
		Loaded:    true,
		Baseline:  formstate.Snapshot{},
		Values:    formstate.NewValues(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewEdit открывает сессию редактирования. До CompleteLoad сессия не загружена.
func NewEdit(id, listingID string, now time.Time) *Session {
	return &Session{
		ID:        id,
		ListingID: listingID,
		Mode:      ModeEdit,
		Values:    formstate.NewValues(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Clone() *Session {
	c := *s
	return &c
}

// BeginLoad начинает новую загрузку и возвращает ее поколение.
// Все начатые ранее загрузки становятся устаревшими.
func (s *Session) BeginLoad(now time.Time) uint64 {
	s.Generation++
	s.UpdatedAt = now
	return s.Generation
}

// CompleteLoad применяет загруженное объявление, если загрузка не устарела.
// Возвращает файлы, которые больше не нужны после сброса медиа.
func (s *Session) CompleteLoad(generation uint64, l domain.Listing, now time.Time) ([]media.Upload, error) {
	if generation != s.Generation {
		return nil, domain.ErrStaleResponse
	}

	values := formstate.FromListing(l)
	next := media.Reduce(s.Media, media.Reset{State: media.FromListing(l)})
	released := media.ReleasedUploads(s.Media, next)

	s.Listing = &l
	s.Values = values
	s.Media = next
	s.Baseline = formstate.Normalize(values, next)
	s.Loaded = true
	s.UpdatedAt = now
	return released, nil
}

// SetValues заменяет значения формы.
func (s *Session) SetValues(v formstate.Values, now time.Time) error {
	if !s.Loaded {
		return domain.ErrSessionNotLoaded
	}
	s.Values = v
	s.UpdatedAt = now
	return nil
}

// ApplyMedia применяет событие к медиа и возвращает освободившиеся файлы.
func (s *Session) ApplyMedia(ev media.Event, now time.Time) ([]media.Upload, error) {
	if !s.Loaded {
		return nil, domain.ErrSessionNotLoaded
	}
	next := media.Reduce(s.Media, ev)
	released := media.ReleasedUploads(s.Media, next)
	s.Media = next
	s.UpdatedAt = now
	return released, nil
}

// Preview - то, что будет отправлено при сохранении.
type Preview struct {
	Snapshot formstate.Snapshot `json:"snapshot"`
	Patch    map[string]any     `json:"patch"`
	Media    media.Payload      `json:"media"`
}

// HasChanges сообщает, есть ли что отправлять.
func (p Preview) HasChanges() bool {
	return len(p.Patch) > 0 || p.Media.HasChanges()
}

// Preview нормализует форму и считает патч относительно базы.
func (s *Session) Preview() (Preview, error) {
	if !s.Loaded {
		return Preview{}, domain.ErrSessionNotLoaded
	}
	snapshot := formstate.Normalize(s.Values, s.Media)
	baseline := s.Baseline
	if baseline == nil {
		baseline = formstate.Snapshot{}
	}
	return Preview{
		Snapshot: snapshot,
		Patch:    mergepatch.Diff(snapshot, baseline),
		Media:    media.BuildPayload(s.Media),
	}, nil
}
