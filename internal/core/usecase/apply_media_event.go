package usecase

import (
	"context"
	"fmt"
	"time"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port"
)

type ApplyMediaEventUseCase struct {
	store port.EditSessionStorePort
	blobs port.BlobStorePort
}

func NewApplyMediaEventUseCase(store port.EditSessionStorePort, blobs port.BlobStorePort) *ApplyMediaEventUseCase {
	return &ApplyMediaEventUseCase{store: store, blobs: blobs}
}

// Execute применяет событие к медиа сессии и освобождает ставшие ненужными файлы.
func (uc *ApplyMediaEventUseCase) Execute(ctx context.Context, sessionID string, event media.Event) (*editsession.Session, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ApplyMediaEvent",
		"session_id": sessionID,
		"event":      fmt.Sprintf("%T", event),
	})

	var released []media.Upload
	session, err := uc.store.Update(ctx, sessionID, func(s *editsession.Session) error {
		r, err := s.ApplyMedia(event, time.Now())
		released = r
		return err
	})
	if err != nil {
		logger.Warn("Failed to apply media event", port.Fields{"error": err.Error()})
		return nil, err
	}

	releaseUploads(ctx, logger, uc.blobs, released)
	logger.Debug("Media event applied", port.Fields{"primary": session.Media.Primary.String()})
	return session, nil
}
