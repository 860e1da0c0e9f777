package usecase

import (
	"context"
	"fmt"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

type GetListingUseCase struct {
	api port.ListingAPIPort
}

func NewGetListingUseCase(api port.ListingAPIPort) *GetListingUseCase {
	return &GetListingUseCase{api: api}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, id string) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetListing",
		"listing_id": id,
	})
	logger.Info("Use case started", nil)

	payload, err := uc.api.GetListing(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch listing from upstream", err, nil)
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}

	listing, err := decodeListing(logger, payload)
	if err != nil {
		return nil, err
	}

	logger.Info("Use case finished successfully", nil)
	return listing, nil
}
