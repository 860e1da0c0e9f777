package usecase

import (
	"context"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/port"
)

type PreviewEditSessionUseCase struct {
	store port.EditSessionStorePort
}

func NewPreviewEditSessionUseCase(store port.EditSessionStorePort) *PreviewEditSessionUseCase {
	return &PreviewEditSessionUseCase{store: store}
}

// Execute показывает снимок, патч и медиа-часть, которые уйдут при сохранении.
func (uc *PreviewEditSessionUseCase) Execute(ctx context.Context, sessionID string) (*editsession.Preview, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "PreviewEditSession",
		"session_id": sessionID,
	})

	session, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		logger.Warn("Edit session not available", port.Fields{"error": err.Error()})
		return nil, err
	}

	preview, err := session.Preview()
	if err != nil {
		logger.Warn("Edit session cannot be previewed", port.Fields{"error": err.Error()})
		return nil, err
	}

	logger.Debug("Edit session previewed", port.Fields{"changed_fields": changedFields(preview.Patch)})
	return &preview, nil
}
