package usecase

import (
	"context"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/port"
)

type CancelEditSessionUseCase struct {
	store port.EditSessionStorePort
	blobs port.BlobStorePort
}

func NewCancelEditSessionUseCase(store port.EditSessionStorePort, blobs port.BlobStorePort) *CancelEditSessionUseCase {
	return &CancelEditSessionUseCase{store: store, blobs: blobs}
}

// Execute закрывает сессию без сохранения и освобождает все ее файлы.
func (uc *CancelEditSessionUseCase) Execute(ctx context.Context, sessionID string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "CancelEditSession",
		"session_id": sessionID,
	})

	session, err := uc.store.Delete(ctx, sessionID)
	if err != nil {
		logger.Warn("Edit session not available", port.Fields{"error": err.Error()})
		return err
	}

	releaseUploads(ctx, logger, uc.blobs, session.Media.Uploads())
	logger.Info("Edit session cancelled", nil)
	return nil
}
