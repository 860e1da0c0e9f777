package usecase

import (
	"context"
	"fmt"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
	"listing-admin-service/internal/core/validation"
)

const (
	defaultInterestPageSize = 20
	maxInterestPageSize     = 100
)

type GetListingInterestsUseCase struct {
	api port.ListingAPIPort
}

func NewGetListingInterestsUseCase(api port.ListingAPIPort) *GetListingInterestsUseCase {
	return &GetListingInterestsUseCase{api: api}
}

func (uc *GetListingInterestsUseCase) Execute(ctx context.Context, listingID string, page, pageSize int) (*domain.InterestPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultInterestPageSize
	}
	if pageSize > maxInterestPageSize {
		pageSize = maxInterestPageSize
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetListingInterests",
		"listing_id": listingID,
		"page":       page,
		"page_size":  pageSize,
	})
	logger.Info("Use case started", nil)

	payload, err := uc.api.ListInterests(ctx, listingID, page, pageSize)
	if err != nil {
		logger.Error("Failed to fetch interests from upstream", err, nil)
		return nil, fmt.Errorf("failed to fetch interests: %w", err)
	}

	result := validation.ParseInterestPage(payload, page, pageSize)

	logger.Info("Use case finished successfully", port.Fields{"items": len(result.Items)})
	return &result, nil
}
