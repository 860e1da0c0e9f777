package usecase

import (
	"context"
	"fmt"
	"strings"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

type CreateInterestUseCase struct {
	api port.ListingAPIPort
}

func NewCreateInterestUseCase(api port.ListingAPIPort) *CreateInterestUseCase {
	return &CreateInterestUseCase{api: api}
}

// Execute передает заявку посетителя апстриму. Тело ответа не используется.
func (uc *CreateInterestUseCase) Execute(ctx context.Context, req domain.InterestRequest) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "CreateInterest",
		"listing_id": req.ListingID,
	})
	logger.Info("Use case started", nil)

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Message != nil {
		msg := strings.TrimSpace(*req.Message)
		req.Message = &msg
		if msg == "" {
			req.Message = nil
		}
	}

	var issues []domain.ValidationIssue
	if req.ListingID == "" {
		issues = append(issues, domain.ValidationIssue{Path: "/listingId", Message: "required"})
	}
	if req.Name == "" {
		issues = append(issues, domain.ValidationIssue{Path: "/name", Message: "required"})
	}
	if req.Phone == "" {
		issues = append(issues, domain.ValidationIssue{Path: "/phone", Message: "required"})
	}
	if len(issues) > 0 {
		logger.Warn("Interest request failed validation", port.Fields{"issues": issues})
		return domain.NewValidationError(domain.SourceForm, issues)
	}

	if _, err := uc.api.CreateInterest(ctx, req); err != nil {
		logger.Error("Upstream rejected interest request", err, nil)
		return fmt.Errorf("failed to create interest: %w", err)
	}

	logger.Info("Use case finished successfully", nil)
	return nil
}
