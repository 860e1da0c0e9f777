package usecases_port

import (
	"context"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/formstate"
)

type GetListingUseCasePort interface {
	Execute(ctx context.Context, id string) (*domain.Listing, error)
}

type ListListingsUseCasePort interface {
	Execute(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, error)
}

type GetSimilarListingsUseCasePort interface {
	Execute(ctx context.Context, id string) ([]domain.Listing, error)
}

// CreateListingUseCasePort создает объявление без медиа. Listing может быть nil,
// если апстрим ответил телом, которое не прошло проверку.
type CreateListingUseCasePort interface {
	Execute(ctx context.Context, values formstate.Values) (*domain.Listing, error)
}

type DeleteListingUseCasePort interface {
	Execute(ctx context.Context, id string) error
}

type GetListingOptionsUseCasePort interface {
	Execute(ctx context.Context) domain.ListingOptions
}

type GetPatchHistoryUseCasePort interface {
	Execute(ctx context.Context, listingID string, limit int) ([]domain.PatchAuditEntry, error)
}
