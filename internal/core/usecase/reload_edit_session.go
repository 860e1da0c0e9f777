package usecase

import (
	"context"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/port"
)

type ReloadEditSessionUseCase struct {
	store port.EditSessionStorePort
	api   port.ListingAPIPort
	blobs port.BlobStorePort
}

func NewReloadEditSessionUseCase(store port.EditSessionStorePort, api port.ListingAPIPort, blobs port.BlobStorePort) *ReloadEditSessionUseCase {
	return &ReloadEditSessionUseCase{store: store, api: api, blobs: blobs}
}

// Execute заново загружает объявление. Несохраненные правки и загруженные файлы сбрасываются.
// Для сессии создания перезагружать нечего, она возвращается как есть.
func (uc *ReloadEditSessionUseCase) Execute(ctx context.Context, sessionID string) (*editsession.Session, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ReloadEditSession",
		"session_id": sessionID,
	})
	logger.Info("Use case started", nil)

	current, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		logger.Warn("Edit session not available", port.Fields{"error": err.Error()})
		return nil, err
	}
	if current.Mode == editsession.ModeCreate {
		return current, nil
	}

	session, err := loadSession(ctx, logger.WithFields(port.Fields{"listing_id": current.ListingID}), uc.store, uc.api, uc.blobs, sessionID, current.ListingID)
	if err != nil {
		if err != domain.ErrStaleResponse {
			logger.Error("Failed to reload edit session", err, nil)
		}
		return nil, err
	}

	logger.Info("Use case finished successfully", port.Fields{"generation": session.Generation})
	return session, nil
}
