package usecase

import (
	"context"
	"time"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/formstate"
	"listing-admin-service/internal/core/port"
)

type UpdateEditFormUseCase struct {
	store port.EditSessionStorePort
}

func NewUpdateEditFormUseCase(store port.EditSessionStorePort) *UpdateEditFormUseCase {
	return &UpdateEditFormUseCase{store: store}
}

// Execute заменяет значения формы. Проверка формы выполняется только при сохранении.
func (uc *UpdateEditFormUseCase) Execute(ctx context.Context, sessionID string, values formstate.Values) (*editsession.Session, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "UpdateEditForm",
		"session_id": sessionID,
	})

	session, err := uc.store.Update(ctx, sessionID, func(s *editsession.Session) error {
		return s.SetValues(values, time.Now())
	})
	if err != nil {
		logger.Warn("Failed to update edit form", port.Fields{"error": err.Error()})
		return nil, err
	}

	logger.Debug("Edit form updated", nil)
	return session, nil
}
