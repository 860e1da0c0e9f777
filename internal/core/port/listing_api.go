package port

import (
	"context"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/media"
)

// ListingSubmission - то, что уходит апстриму при сохранении объявления:
// merge patch и медиа-часть. Файлы читаются из BlobStorePort по BlobID.
type ListingSubmission struct {
	Patch map[string]any
	Media media.Payload
}

// ListingAPIPort - транспорт к апстримному API объявлений.
// Методы возвращают уже декодированный JSON без проверки. Ответ с кодом не 2xx
// возвращается как *domain.UpstreamError.
type ListingAPIPort interface {
	GetListing(ctx context.Context, id string) (any, error)
	ListListings(ctx context.Context, query domain.ListingQuery) (any, error)
	GetSimilar(ctx context.Context, id string) (any, error)

	CreateListing(ctx context.Context, sub ListingSubmission) (any, error)
	UpdateListing(ctx context.Context, id string, sub ListingSubmission) (any, error)
	DeleteListing(ctx context.Context, id string) error

	CreateInterest(ctx context.Context, req domain.InterestRequest) (any, error)
	ListInterests(ctx context.Context, listingID string, page, pageSize int) (any, error)
}
