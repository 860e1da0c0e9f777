package port

import (
	"context"

	"listing-admin-service/internal/core/domain"
)

// ListingEventPublisherPort публикует события об изменении объявлений.
type ListingEventPublisherPort interface {
	PublishListingChanged(ctx context.Context, event domain.ListingChangedEvent) error
}
