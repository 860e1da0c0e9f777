package usecase

import (
	"context"
	"fmt"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type GetPatchHistoryUseCase struct {
	audit port.PatchAuditRepositoryPort
}

func NewGetPatchHistoryUseCase(audit port.PatchAuditRepositoryPort) *GetPatchHistoryUseCase {
	return &GetPatchHistoryUseCase{audit: audit}
}

func (uc *GetPatchHistoryUseCase) Execute(ctx context.Context, listingID string, limit int) ([]domain.PatchAuditEntry, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetPatchHistory",
		"listing_id": listingID,
	})

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := uc.audit.ListByListing(ctx, listingID, limit)
	if err != nil {
		logger.Error("Failed to read patch history", err, nil)
		return nil, fmt.Errorf("failed to read patch history: %w", err)
	}
	if entries == nil {
		entries = []domain.PatchAuditEntry{}
	}

	logger.Info("Use case finished successfully", port.Fields{"entries": len(entries)})
	return entries, nil
}
