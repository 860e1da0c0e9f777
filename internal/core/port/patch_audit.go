package port

import (
	"context"

	"listing-admin-service/internal/core/domain"
)

// PatchAuditRepositoryPort - журнал отправленных патчей.
type PatchAuditRepositoryPort interface {
	Save(ctx context.Context, entry domain.PatchAuditEntry) error
	ListByListing(ctx context.Context, listingID string, limit int) ([]domain.PatchAuditEntry, error)
}
