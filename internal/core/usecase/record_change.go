package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

// changeRecorder пишет журнал патчей и публикует событие об изменении.
// Это побочные каналы: их ошибки логируются, но не отменяют уже принятое апстримом изменение.
type changeRecorder struct {
	audit  port.PatchAuditRepositoryPort
	events port.ListingEventPublisherPort
}

func newChangeRecorder(audit port.PatchAuditRepositoryPort, events port.ListingEventPublisherPort) changeRecorder {
	return changeRecorder{audit: audit, events: events}
}

func (r changeRecorder) record(ctx context.Context, logger port.LoggerPort, entry domain.PatchAuditEntry) {
	entry.ID = uuid.New().String()
	entry.TraceID = contextkeys.TraceIDFromContext(ctx)
	entry.CreatedAt = time.Now().UTC()

	if r.audit != nil {
		if err := r.audit.Save(ctx, entry); err != nil {
			logger.Error("Failed to save patch audit entry", err, port.Fields{"listing_id": entry.ListingID})
		}
	}

	if r.events != nil {
		event := domain.ListingChangedEvent{
			ListingID:     entry.ListingID,
			Kind:          entry.Kind,
			Patch:         entry.Patch,
			ChangedFields: changedFields(entry.Patch),
			MediaChanged:  len(entry.Media) > 0,
			OccurredAt:    entry.CreatedAt,
		}
		if err := r.events.PublishListingChanged(ctx, event); err != nil {
			logger.Error("Failed to publish listing changed event", err, port.Fields{"listing_id": entry.ListingID})
		}
	}
}
