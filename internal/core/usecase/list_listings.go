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

type ListListingsUseCase struct {
	api port.ListingAPIPort
}

func NewListListingsUseCase(api port.ListingAPIPort) *ListListingsUseCase {
	return &ListListingsUseCase{api: api}
}

// Execute загружает страницу объявлений. Один невалидный элемент делает
// невалидной всю страницу: частичных результатов нет.
func (uc *ListListingsUseCase) Execute(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListListings"})
	logger.Info("Use case started", port.Fields{"city": query.City, "q": query.Q})

	payload, err := uc.api.ListListings(ctx, query)
	if err != nil {
		logger.Error("Failed to fetch listings from upstream", err, nil)
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	page, err := validation.ParseListingList(payload)
	if err != nil {
		logValidationFailure(logger, "Upstream listing list failed validation", err, payload)
		return nil, fmt.Errorf("invalid listing list payload: %w", err)
	}

	items, err := mapper.ToListings(page.Items)
	if err != nil {
		logger.Error("Listing mapping invariant violated", err, nil)
		return nil, fmt.Errorf("failed to map listings: %w", err)
	}
	if items == nil {
		items = []domain.Listing{}
	}

	logger.Info("Use case finished successfully", port.Fields{"items": len(items), "total": page.Total})
	return &domain.ListingPage{Items: items, Total: page.Total}, nil
}
