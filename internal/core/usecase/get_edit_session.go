package usecase

import (
	"context"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/port"
)

type GetEditSessionUseCase struct {
	store port.EditSessionStorePort
}

func NewGetEditSessionUseCase(store port.EditSessionStorePort) *GetEditSessionUseCase {
	return &GetEditSessionUseCase{store: store}
}

func (uc *GetEditSessionUseCase) Execute(ctx context.Context, sessionID string) (*editsession.Session, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetEditSession",
		"session_id": sessionID,
	})

	session, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		logger.Warn("Edit session not available", port.Fields{"error": err.Error()})
		return nil, err
	}
	return session, nil
}
