package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/formstate"
	"listing-admin-service/internal/core/port"
	"listing-admin-service/internal/core/port/usecases_port"
)

// ListingHandler обслуживает чтение, создание и удаление объявлений.
type ListingHandler struct {
	getUC     usecases_port.GetListingUseCasePort
	listUC    usecases_port.ListListingsUseCasePort
	similarUC usecases_port.GetSimilarListingsUseCasePort
	createUC  usecases_port.CreateListingUseCasePort
	deleteUC  usecases_port.DeleteListingUseCasePort
	optionsUC usecases_port.GetListingOptionsUseCasePort
	historyUC usecases_port.GetPatchHistoryUseCasePort
}

func NewListingHandler(
	getUC usecases_port.GetListingUseCasePort,
	listUC usecases_port.ListListingsUseCasePort,
	similarUC usecases_port.GetSimilarListingsUseCasePort,
	createUC usecases_port.CreateListingUseCasePort,
	deleteUC usecases_port.DeleteListingUseCasePort,
	optionsUC usecases_port.GetListingOptionsUseCasePort,
	historyUC usecases_port.GetPatchHistoryUseCasePort,
) *ListingHandler {
	return &ListingHandler{
		getUC:     getUC,
		listUC:    listUC,
		similarUC: similarUC,
		createUC:  createUC,
		deleteUC:  deleteUC,
		optionsUC: optionsUC,
		historyUC: historyUC,
	}
}

// ListListings обрабатывает GET /api/v1/listings
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListListings"})

	query, err := parseListingQuery(r.URL.Query())
	if err != nil {
		logger.Warn("Invalid listing query", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.listUC.Execute(r.Context(), query)
	if err != nil {
		writeListingError(w, logger, opLoad, err)
		return
	}

	logger.Info("Listings retrieved", port.Fields{"total": page.Total, "items_on_page": len(page.Items)})
	RespondWithJSON(w, http.StatusOK, page)
}

// GetListing обрабатывает GET /api/v1/listings/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListing", "listing_id": id})

	listing, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeListingError(w, logger, opLoad, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, listing)
}

// GetSimilarListings обрабатывает GET /api/v1/listings/{id}/similar
func (h *ListingHandler) GetSimilarListings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSimilarListings", "listing_id": id})

	items, err := h.similarUC.Execute(r.Context(), id)
	if err != nil {
		writeListingError(w, logger, opLoad, err)
		return
	}
	if items == nil {
		items = []domain.Listing{}
	}
	RespondWithJSON(w, http.StatusOK, SimilarListingsResponse{Items: items})
}

// CreateListing обрабатывает POST /api/v1/listings: тело - значения формы.
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateListing"})

	values := formstate.NewValues()
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		logger.Warn("Failed to decode request body for create listing", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	listing, err := h.createUC.Execute(r.Context(), values)
	if err != nil {
		writeListingError(w, logger, opCreate, err)
		return
	}

	logger.Info("Listing created", nil)
	RespondWithJSON(w, http.StatusCreated, CreateListingResponse{Listing: listing})
}

// DeleteListing обрабатывает DELETE /api/v1/listings/{id}
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteListing", "listing_id": id})

	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		writeListingError(w, logger, opDelete, err)
		return
	}

	logger.Info("Listing deleted", nil)
	w.WriteHeader(http.StatusNoContent)
}

// GetListingOptions обрабатывает GET /api/v1/listing-options
func (h *ListingHandler) GetListingOptions(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.optionsUC.Execute(r.Context()))
}

// GetPatchHistory обрабатывает GET /api/v1/listings/{id}/patches
func (h *ListingHandler) GetPatchHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPatchHistory", "listing_id": id})

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.historyUC.Execute(r.Context(), id, limit)
	if err != nil {
		logger.Error("Get patch history use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve patch history")
		return
	}
	if entries == nil {
		entries = []domain.PatchAuditEntry{}
	}
	RespondWithJSON(w, http.StatusOK, PatchHistoryResponse{Items: entries})
}

// parseListingQuery читает параметры поиска. Пустые параметры не передаются.
func parseListingQuery(q url.Values) (domain.ListingQuery, error) {
	query := domain.ListingQuery{
		City:               strings.TrimSpace(q.Get("city")),
		Q:                  strings.TrimSpace(q.Get("q")),
		Sort:               strings.TrimSpace(q.Get("sort")),
		Furnishing:         strings.TrimSpace(q.Get("furnishing")),
		ConstructionStatus: strings.TrimSpace(q.Get("constructionStatus")),
		Category:           strings.TrimSpace(q.Get("category")),
		Status:             strings.TrimSpace(q.Get("status")),
	}

	var err error
	if query.Page, err = optionalInt(q, "page"); err != nil {
		return query, err
	}
	if query.PerPage, err = optionalInt(q, "perPage"); err != nil {
		return query, err
	}
	if query.Bedrooms, err = optionalInt(q, "bedrooms"); err != nil {
		return query, err
	}
	if query.BHK, err = optionalInt(q, "bhk"); err != nil {
		return query, err
	}
	if query.MinPrice, err = optionalFloat(q, "minPrice"); err != nil {
		return query, err
	}
	if query.MaxPrice, err = optionalFloat(q, "maxPrice"); err != nil {
		return query, err
	}
	return query, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	return &v, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not a number", key, raw)
	}
	return &v, nil
}
