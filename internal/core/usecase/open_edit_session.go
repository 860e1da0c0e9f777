package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/port"
)

type OpenEditSessionUseCase struct {
	store port.EditSessionStorePort
	api   port.ListingAPIPort
	blobs port.BlobStorePort
}

func NewOpenEditSessionUseCase(store port.EditSessionStorePort, api port.ListingAPIPort, blobs port.BlobStorePort) *OpenEditSessionUseCase {
	return &OpenEditSessionUseCase{store: store, api: api, blobs: blobs}
}

// Execute открывает сессию. Без listingID открывается пустая форма создания,
// иначе объявление сразу загружается. Если загрузка не удалась, сессия удаляется.
func (uc *OpenEditSessionUseCase) Execute(ctx context.Context, listingID string) (*editsession.Session, error) {
	sessionID := uuid.New().String()
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "OpenEditSession",
		"session_id": sessionID,
		"listing_id": listingID,
	})
	logger.Info("Use case started", nil)

	if listingID == "" {
		session := editsession.NewCreate(sessionID, time.Now())
		if err := uc.store.Create(ctx, session); err != nil {
			logger.Error("Failed to store create session", err, nil)
			return nil, fmt.Errorf("failed to open edit session: %w", err)
		}
		logger.Info("Use case finished successfully", port.Fields{"mode": session.Mode})
		return session.Clone(), nil
	}

	if err := uc.store.Create(ctx, editsession.NewEdit(sessionID, listingID, time.Now())); err != nil {
		logger.Error("Failed to store edit session", err, nil)
		return nil, fmt.Errorf("failed to open edit session: %w", err)
	}

	session, err := loadSession(ctx, logger, uc.store, uc.api, uc.blobs, sessionID, listingID)
	if err != nil {
		if _, delErr := uc.store.Delete(ctx, sessionID); delErr != nil {
			logger.Error("Failed to drop edit session after load failure", delErr, nil)
		}
		return nil, err
	}

	logger.Info("Use case finished successfully", port.Fields{"mode": session.Mode})
	return session, nil
}
