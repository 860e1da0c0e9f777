package usecase

import (
	"context"
	"fmt"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/formstate"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/mergepatch"
	"listing-admin-service/internal/core/port"
)

type CreateListingUseCase struct {
	api      port.ListingAPIPort
	recorder changeRecorder
}

func NewCreateListingUseCase(api port.ListingAPIPort, audit port.PatchAuditRepositoryPort, events port.ListingEventPublisherPort) *CreateListingUseCase {
	return &CreateListingUseCase{api: api, recorder: newChangeRecorder(audit, events)}
}

// Execute создает объявление по значениям формы без медиа.
// Базы нет, поэтому в патч уходит весь нормализованный снимок.
func (uc *CreateListingUseCase) Execute(ctx context.Context, values formstate.Values) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CreateListing"})
	logger.Info("Use case started", nil)

	if err := formstate.Validate(values); err != nil {
		logger.Warn("Listing form failed validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	patch := mergepatch.Diff(formstate.Normalize(values, media.State{}), formstate.Snapshot{})

	payload, err := uc.api.CreateListing(ctx, port.ListingSubmission{Patch: patch})
	if err != nil {
		logger.Error("Upstream rejected listing creation", err, nil)
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	listing := decodeSavedListing(logger, payload)
	listingID := ""
	if listing != nil {
		listingID = listing.ID
	}

	uc.recorder.record(ctx, logger, domain.PatchAuditEntry{
		ListingID: listingID,
		Kind:      domain.ChangeCreated,
		Patch:     patch,
	})

	logger.Info("Use case finished successfully", port.Fields{"listing_id": listingID})
	return listing, nil
}
