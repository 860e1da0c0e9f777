package usecase

import (
	"context"
	"fmt"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/mapper"
	"listing-admin-service/internal/core/port"
	"listing-admin-service/internal/core/validation"
)

type GetSimilarListingsUseCase struct {
	api port.ListingAPIPort
}

func NewGetSimilarListingsUseCase(api port.ListingAPIPort) *GetSimilarListingsUseCase {
	return &GetSimilarListingsUseCase{api: api}
}

// Execute загружает похожие объявления. Невалидные элементы пропускаются.
func (uc *GetSimilarListingsUseCase) Execute(ctx context.Context, id string) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetSimilarListings",
		"listing_id": id,
	})
	logger.Info("Use case started", nil)

	payload, err := uc.api.GetSimilar(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch similar listings from upstream", err, nil)
		return nil, fmt.Errorf("failed to fetch similar listings: %w", err)
	}

	wires, dropped := validation.ParseSimilar(payload)
	for _, verr := range dropped {
		logValidationFailure(logger, "Dropping invalid similar listing", verr, nil)
	}

	items, err := mapper.ToListings(wires)
	if err != nil {
		logger.Error("Listing mapping invariant violated", err, nil)
		return nil, fmt.Errorf("failed to map similar listings: %w", err)
	}
	if items == nil {
		items = []domain.Listing{}
	}

	logger.Info("Use case finished successfully", port.Fields{"items": len(items), "dropped": len(dropped)})
	return items, nil
}
