package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/davecgh/go-spew/spew"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/mapper"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port"
	"listing-admin-service/internal/core/validation"
)

// Сколько проблем валидации попадает в лог.
const maxLoggedIssues = 8

var sampleDumper = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                4,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// logValidationFailure пишет диагностику невалидного ответа апстрима:
// первые проблемы на уровне warn и дамп самого ответа на уровне debug.
func logValidationFailure(logger port.LoggerPort, msg string, err error, sample any) {
	fields := port.Fields{}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		issues := verr.Issues
		if len(issues) > maxLoggedIssues {
			issues = issues[:maxLoggedIssues]
		}
		fields["path"] = verr.Path
		fields["issues"] = issues
		fields["issue_count"] = len(verr.Issues)
		if verr.Index != nil {
			fields["item_index"] = *verr.Index
		}
	}

	logger.Warn(msg, fields)
	logger.Debug("Invalid payload sample", port.Fields{"sample": sampleDumper.Sdump(sample)})
}

// decodeListing проверяет и приводит к каноническому виду одиночное объявление.
func decodeListing(logger port.LoggerPort, payload any) (*domain.Listing, error) {
	wire, err := validation.ParseListing(payload)
	if err != nil {
		logValidationFailure(logger, "Upstream listing payload failed validation", err, payload)
		return nil, fmt.Errorf("invalid listing payload: %w", err)
	}

	listing, err := mapper.ToListing(wire)
	if err != nil {
		logger.Error("Listing mapping invariant violated", err, port.Fields{"listing_id": wire.ID})
		return nil, fmt.Errorf("failed to map listing: %w", err)
	}
	return &listing, nil
}

// decodeSavedListing - ответ на сохранение. Невалидное тело не считается ошибкой:
// изменения уже приняты апстримом, поэтому возвращается nil.
func decodeSavedListing(logger port.LoggerPort, payload any) *domain.Listing {
	if payload == nil {
		return nil
	}
	listing, err := decodeListing(logger, payload)
	if err != nil {
		logger.Warn("Saved listing response could not be decoded, returning without listing", port.Fields{"error": err.Error()})
		return nil
	}
	return listing
}

// changedFields - ключи верхнего уровня патча в стабильном порядке.
func changedFields(patch map[string]any) []string {
	fields := make([]string, 0, len(patch))
	for k := range patch {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// mediaSummary - медиа-часть отправки в виде JSON для журнала.
func mediaSummary(p media.Payload) map[string]any {
	if !p.HasChanges() {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
