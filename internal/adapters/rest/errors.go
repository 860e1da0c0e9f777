package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

// Операции над объявлением, которые подставляются в сообщения об ошибках.
const (
	opLoad   = "load"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Глубина, до которой ищется сообщение в теле ответа апстрима.
const maxMessageDepth = 4

// Ключи, в которых апстрим кладет текст ошибки, в порядке приоритета.
var (
	directMessageKeys = []string{"message", "detail", "error", "title"}
	nestedMessageKeys = []string{"errors", "data", "details"}
)

// writeListingError отвечает на ошибку use case, связанного с объявлением.
func writeListingError(w http.ResponseWriter, logger port.LoggerPort, op string, err error) {
	writeUseCaseError(w, logger, err, func(e *domain.UpstreamError) string {
		return resolveAPIErrorMessage(e.Body, op, e.Status)
	}, fmt.Sprintf("Couldn't %s listing: the listing service returned unexpected data", op))
}

// writeUseCaseError переводит ошибку в HTTP-ответ. upstreamMessage выбирает
// текст для ответа апстрима с ошибкой, invalidPayload - для невалидных данных апстрима.
func writeUseCaseError(
	w http.ResponseWriter,
	logger port.LoggerPort,
	err error,
	upstreamMessage func(e *domain.UpstreamError) string,
	invalidPayload string,
) {
	var verr *domain.ValidationError
	var uerr *domain.UpstreamError

	switch {
	case errors.As(err, &verr) && verr.Source == domain.SourceForm:
		logger.Warn("Request rejected by form validation", port.Fields{"path": verr.Path, "issue_count": len(verr.Issues)})
		writeValidationError(w, "Please check the highlighted fields", verr.Issues)
	case errors.As(err, &verr):
		logger.Error("Upstream payload failed validation", err, nil)
		WriteJSONError(w, http.StatusBadGateway, invalidPayload)
	case errors.As(err, &uerr):
		status := uerr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		logger.Warn("Upstream request failed", port.Fields{"upstream_status": uerr.Status})
		WriteJSONError(w, status, upstreamMessage(uerr))
	case errors.Is(err, domain.ErrSessionNotFound):
		WriteJSONError(w, http.StatusNotFound, "Edit session not found or expired")
	case errors.Is(err, domain.ErrSessionNotLoaded):
		WriteJSONError(w, http.StatusConflict, "Listing is still loading, reload the edit session")
	case errors.Is(err, domain.ErrStaleResponse):
		WriteJSONError(w, http.StatusConflict, "A newer load superseded this request")
	case errors.Is(err, domain.ErrNoChanges):
		WriteJSONError(w, http.StatusConflict, "There are no changes to save")
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrUploadTooLarge):
		WriteJSONError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Upstream request timed out", err, nil)
		WriteJSONError(w, http.StatusGatewayTimeout, "The listing service did not respond in time")
	case errors.Is(err, domain.ErrTransformation):
		logger.Error("Transformation invariant violated", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	default:
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// resolveAPIErrorMessage: body.message, затем тело-строка, затем общий текст с кодом.
func resolveAPIErrorMessage(body any, op string, status int) string {
	switch b := body.(type) {
	case map[string]any:
		if msg, ok := b["message"].(string); ok && strings.TrimSpace(msg) != "" {
			return strings.TrimSpace(msg)
		}
	case string:
		if strings.TrimSpace(b) != "" {
			return strings.TrimSpace(b)
		}
	}
	return fmt.Sprintf("Failed to %s listing (%d)", op, status)
}

// extractErrorMessage ищет текст ошибки в произвольном теле ответа:
// сначала прямые ключи, затем вложенные контейнеры, затем все остальные значения.
func extractErrorMessage(v any, depth int) (string, bool) {
	if depth > maxMessageDepth || v == nil {
		return "", false
	}

	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return "", false
		}
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case []any:
		for _, item := range t {
			if msg, ok := extractErrorMessage(item, depth+1); ok {
				return msg, true
			}
		}
	case map[string]any:
		for _, key := range directMessageKeys {
			if msg, ok := extractErrorMessage(t[key], depth+1); ok {
				return msg, true
			}
		}
		for _, key := range nestedMessageKeys {
			if msg, ok := extractErrorMessage(t[key], depth+1); ok {
				return msg, true
			}
		}
		for _, key := range sortedKeys(t) {
			if msg, ok := extractErrorMessage(t[key], depth+1); ok {
				return msg, true
			}
		}
	}
	return "", false
}

// interestSubmitMessage - текст ошибки отправки заявки.
func interestSubmitMessage(e *domain.UpstreamError) string {
	if msg, ok := extractErrorMessage(e.Body, 0); ok {
		return msg
	}
	switch {
	case e.Status >= 500:
		return "We ran into a server issue while submitting your interest. Please try again shortly."
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		return "Please double-check the details and try again."
	default:
		return "We couldn't submit your interest right now. Please retry in a bit."
	}
}

// interestFetchMessage - текст ошибки загрузки заявок.
func interestFetchMessage(e *domain.UpstreamError) string {
	if msg, ok := extractErrorMessage(e.Body, 0); ok {
		return msg
	}
	if e.Status >= 500 {
		return "The server is temporarily unavailable. Please refresh in a moment."
	}
	return "Failed to load inquiries. Please try again."
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
