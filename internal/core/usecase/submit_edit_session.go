package usecase

import (
	"context"
	"fmt"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/formstate"
	"listing-admin-service/internal/core/port"
	"listing-admin-service/internal/core/port/usecases_port"
)

type SubmitEditSessionUseCase struct {
	store    port.EditSessionStorePort
	api      port.ListingAPIPort
	blobs    port.BlobStorePort
	recorder changeRecorder
}

func NewSubmitEditSessionUseCase(
	store port.EditSessionStorePort,
	api port.ListingAPIPort,
	blobs port.BlobStorePort,
	audit port.PatchAuditRepositoryPort,
	events port.ListingEventPublisherPort,
) *SubmitEditSessionUseCase {
	return &SubmitEditSessionUseCase{
		store:    store,
		api:      api,
		blobs:    blobs,
		recorder: newChangeRecorder(audit, events),
	}
}

// Execute проверяет форму, отправляет патч и медиа апстриму и закрывает сессию.
// При ошибке апстрима сессия остается открытой, чтобы правки можно было отправить повторно.
func (uc *SubmitEditSessionUseCase) Execute(ctx context.Context, sessionID string) (*usecases_port.SubmitResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "SubmitEditSession",
		"session_id": sessionID,
	})
	logger.Info("Use case started", nil)

	session, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		logger.Warn("Edit session not available", port.Fields{"error": err.Error()})
		return nil, err
	}
	logger = logger.WithFields(port.Fields{"listing_id": session.ListingID, "mode": session.Mode})

	if !session.Loaded {
		return nil, domain.ErrSessionNotLoaded
	}
	if err := formstate.Validate(session.Values); err != nil {
		logger.Warn("Listing form failed validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	preview, err := session.Preview()
	if err != nil {
		return nil, err
	}
	if session.Mode == editsession.ModeEdit && !preview.HasChanges() {
		logger.Info("Nothing to submit", nil)
		return nil, domain.ErrNoChanges
	}

	sub := port.ListingSubmission{Patch: preview.Patch, Media: preview.Media}
	kind := domain.ChangeUpdated

	var payload any
	if session.Mode == editsession.ModeCreate {
		kind = domain.ChangeCreated
		payload, err = uc.api.CreateListing(ctx, sub)
	} else {
		payload, err = uc.api.UpdateListing(ctx, session.ListingID, sub)
	}
	if err != nil {
		logger.Error("Upstream rejected listing submission", err, nil)
		return nil, fmt.Errorf("failed to submit listing: %w", err)
	}

	listing := decodeSavedListing(logger, payload)
	listingID := session.ListingID
	if listingID == "" && listing != nil {
		listingID = listing.ID
	}

	uc.recorder.record(ctx, logger, domain.PatchAuditEntry{
		ListingID: listingID,
		SessionID: sessionID,
		Kind:      kind,
		Patch:     preview.Patch,
		Baseline:  session.Baseline,
		Media:     mediaSummary(preview.Media),
	})

	closed, err := uc.store.Delete(ctx, sessionID)
	if err != nil {
		logger.Warn("Edit session vanished before close", port.Fields{"error": err.Error()})
		closed = session
	}
	releaseUploads(ctx, logger, uc.blobs, closed.Media.Uploads())

	logger.Info("Use case finished successfully", port.Fields{
		"changed_fields": changedFields(preview.Patch),
		"media_changed":  preview.Media.HasChanges(),
	})
	return &usecases_port.SubmitResult{
		ListingID: listingID,
		Listing:   listing,
		Patch:     preview.Patch,
		Kind:      kind,
	}, nil
}
