package usecase

import (
	"context"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

type GetListingOptionsUseCase struct {
	options domain.ListingOptions
}

func NewGetListingOptionsUseCase() *GetListingOptionsUseCase {
	return &GetListingOptionsUseCase{options: domain.DefaultListingOptions()}
}

func (uc *GetListingOptionsUseCase) Execute(ctx context.Context) domain.ListingOptions {
	contextkeys.LoggerFromContext(ctx).Debug("Serving listing options", port.Fields{"use_case": "GetListingOptions"})
	return uc.options
}
