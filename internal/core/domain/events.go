package domain

import "time"

// ChangeKind - тип изменения объявления.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// ListingChangedEvent публикуется после успешной отправки изменений апстриму.
type ListingChangedEvent struct {
	ListingID     string         `json:"listing_id"`
	Kind          ChangeKind     `json:"kind"`
	Patch         map[string]any `json:"patch,omitempty"`
	ChangedFields []string       `json:"changed_fields,omitempty"`
	MediaChanged  bool           `json:"media_changed"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

// PatchAuditEntry - запись журнала отправленных патчей.
type PatchAuditEntry struct {
	ID        string         `json:"id"`
	ListingID string         `json:"listing_id"`
	SessionID string         `json:"session_id,omitempty"`
	Kind      ChangeKind     `json:"kind"`
	Patch     map[string]any `json:"patch"`
	Baseline  map[string]any `json:"baseline,omitempty"`
	Media     map[string]any `json:"media,omitempty"`
	TraceID   string         `json:"trace_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
