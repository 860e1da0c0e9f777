package usecase

import (
	"context"
	"fmt"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

type DeleteListingUseCase struct {
	api      port.ListingAPIPort
	recorder changeRecorder
}

func NewDeleteListingUseCase(api port.ListingAPIPort, audit port.PatchAuditRepositoryPort, events port.ListingEventPublisherPort) *DeleteListingUseCase {
	return &DeleteListingUseCase{api: api, recorder: newChangeRecorder(audit, events)}
}

func (uc *DeleteListingUseCase) Execute(ctx context.Context, id string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"listing_id": id,
	})
	logger.Info("Use case started", nil)

	if err := uc.api.DeleteListing(ctx, id); err != nil {
		logger.Error("Upstream rejected listing deletion", err, nil)
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	uc.recorder.record(ctx, logger, domain.PatchAuditEntry{
		ListingID: id,
		Kind:      domain.ChangeDeleted,
	})

	logger.Info("Use case finished successfully", nil)
	return nil
}
