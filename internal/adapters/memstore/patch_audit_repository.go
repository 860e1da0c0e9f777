package memstore

import (
	"context"
	"sync"

	"listing-admin-service/internal/core/domain"
)

// PatchAuditRepository - журнал патчей в памяти, используется без DATABASE_URL.
// Хранит не больше capacity последних записей.
type PatchAuditRepository struct {
	mu       sync.RWMutex
	entries  []domain.PatchAuditEntry
	capacity int
}

func NewPatchAuditRepository(capacity int) *PatchAuditRepository {
	if capacity <= 0 {
		capacity = 1000
	}
	return &PatchAuditRepository{capacity: capacity}
}

func (r *PatchAuditRepository) Save(ctx context.Context, entry domain.PatchAuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	if over := len(r.entries) - r.capacity; over > 0 {
		r.entries = append(r.entries[:0:0], r.entries[over:]...)
	}
	return nil
}

// ListByListing возвращает записи от новых к старым.
func (r *PatchAuditRepository) ListByListing(ctx context.Context, listingID string, limit int) ([]domain.PatchAuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.PatchAuditEntry, 0)
	for i := len(r.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if r.entries[i].ListingID == listingID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}
