package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/contracts"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
	"listing-admin-service/internal/core/port/usecases_port"
)

// InterestHandler обслуживает заявки посетителей на объявления.
type InterestHandler struct {
	createUC usecases_port.CreateInterestUseCasePort
	listUC   usecases_port.GetListingInterestsUseCasePort
}

func NewInterestHandler(createUC usecases_port.CreateInterestUseCasePort, listUC usecases_port.GetListingInterestsUseCasePort) *InterestHandler {
	return &InterestHandler{createUC: createUC, listUC: listUC}
}

// CreateInterest обрабатывает POST /api/v1/listings/{id}/interests
func (h *InterestHandler) CreateInterest(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateInterest", "listing_id": listingID})

	// Сначала проверяем сырое тело по схеме, затем раскладываем в DTO
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		logger.Warn("Failed to decode request body for interest", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := contracts.Validate(contracts.InterestRequestSchema, raw); err != nil {
		issues := contracts.Issues(err)
		logger.Warn("Interest request failed schema validation", port.Fields{"issue_count": len(issues)})
		writeValidationError(w, "Please double-check the details and try again.", issues)
		return
	}

	encoded, _ := json.Marshal(raw)
	var body InterestRequestBody
	if err := json.Unmarshal(encoded, &body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.createUC.Execute(r.Context(), domain.InterestRequest{
		ListingID: listingID,
		Name:      body.Name,
		Phone:     body.Phone,
		Message:   body.Message,
	})
	if err != nil {
		writeUseCaseError(w, logger, err, interestSubmitMessage,
			"We couldn't submit your interest right now. Please retry in a bit.")
		return
	}

	logger.Info("Interest submitted", nil)
	w.WriteHeader(http.StatusCreated)
}

// GetListingInterests обрабатывает GET /api/v1/listings/{id}/interests
func (h *InterestHandler) GetListingInterests(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListingInterests", "listing_id": listingID})

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.listUC.Execute(r.Context(), listingID, page, pageSize)
	if err != nil {
		writeUseCaseError(w, logger, err, interestFetchMessage, "Failed to load inquiries. Please try again.")
		return
	}

	logger.Info("Interests retrieved", port.Fields{"items_on_page": len(result.Items), "total": result.Pagination.TotalItems})
	RespondWithJSON(w, http.StatusOK, result)
}
