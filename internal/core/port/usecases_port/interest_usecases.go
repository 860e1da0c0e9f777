package usecases_port

import (
	"context"

	"listing-admin-service/internal/core/domain"
)

type CreateInterestUseCasePort interface {
	Execute(ctx context.Context, req domain.InterestRequest) error
}

type GetListingInterestsUseCasePort interface {
	Execute(ctx context.Context, listingID string, page, pageSize int) (*domain.InterestPage, error)
}
