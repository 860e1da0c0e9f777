package rest

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/formstate"
	"listing-admin-service/internal/core/port"
	"listing-admin-service/internal/core/port/usecases_port"
)

// Сколько multipart-данных держится в памяти, остальное уходит во временные файлы.
const maxMultipartMemory = 32 << 20

// EditSessionHandler обслуживает сессии редактирования объявлений.
type EditSessionHandler struct {
	openUC    usecases_port.OpenEditSessionUseCasePort
	reloadUC  usecases_port.ReloadEditSessionUseCasePort
	getUC     usecases_port.GetEditSessionUseCasePort
	formUC    usecases_port.UpdateEditFormUseCasePort
	mediaUC   usecases_port.ApplyMediaEventUseCasePort
	uploadUC  usecases_port.AttachUploadsUseCasePort
	previewUC usecases_port.PreviewEditSessionUseCasePort
	submitUC  usecases_port.SubmitEditSessionUseCasePort
	cancelUC  usecases_port.CancelEditSessionUseCasePort
}

func NewEditSessionHandler(
	openUC usecases_port.OpenEditSessionUseCasePort,
	reloadUC usecases_port.ReloadEditSessionUseCasePort,
	getUC usecases_port.GetEditSessionUseCasePort,
	formUC usecases_port.UpdateEditFormUseCasePort,
	mediaUC usecases_port.ApplyMediaEventUseCasePort,
	uploadUC usecases_port.AttachUploadsUseCasePort,
	previewUC usecases_port.PreviewEditSessionUseCasePort,
	submitUC usecases_port.SubmitEditSessionUseCasePort,
	cancelUC usecases_port.CancelEditSessionUseCasePort,
) *EditSessionHandler {
	return &EditSessionHandler{
		openUC:    openUC,
		reloadUC:  reloadUC,
		getUC:     getUC,
		formUC:    formUC,
		mediaUC:   mediaUC,
		uploadUC:  uploadUC,
		previewUC: previewUC,
		submitUC:  submitUC,
		cancelUC:  cancelUC,
	}
}

func sessionLogger(r *http.Request, handler string) port.LoggerPort {
	return contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    handler,
		"session_id": chi.URLParam(r, "sessionID"),
	})
}

// OpenCreateSession обрабатывает POST /api/v1/edit-sessions
func (h *EditSessionHandler) OpenCreateSession(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "OpenCreateSession"})

	session, err := h.openUC.Execute(r.Context(), "")
	if err != nil {
		writeListingError(w, logger, opCreate, err)
		return
	}
	logger.Info("Create session opened", port.Fields{"session_id": session.ID})
	RespondWithJSON(w, http.StatusCreated, newEditSessionResponse(session))
}

// OpenEditSession обрабатывает POST /api/v1/listings/{id}/edit-sessions
func (h *EditSessionHandler) OpenEditSession(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "OpenEditSession", "listing_id": listingID})

	session, err := h.openUC.Execute(r.Context(), listingID)
	if err != nil {
		writeListingError(w, logger, opLoad, err)
		return
	}
	logger.Info("Edit session opened", port.Fields{"session_id": session.ID})
	RespondWithJSON(w, http.StatusCreated, newEditSessionResponse(session))
}

// GetEditSession обрабатывает GET /api/v1/edit-sessions/{sessionID}
func (h *EditSessionHandler) GetEditSession(w http.ResponseWriter, r *http.Request) {
	logger := sessionLogger(r, "GetEditSession")

	session, err := h.getUC.Execute(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeListingError(w, logger, opLoad, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newEditSessionResponse(session))
}

// ReloadEditSession обрабатывает POST /api/v1/edit-sessions/{sessionID}/reload
func (h *EditSessionHandler) ReloadEditSession(w http.ResponseWriter, r *http.Request) {
	logger := sessionLogger(r, "ReloadEditSession")

	session, err := h.reloadUC.Execute(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeListingError(w, logger, opLoad, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newEditSessionResponse(session))
}

// UpdateForm обрабатывает PUT /api/v1/edit-sessions/{sessionID}/form
func (h *EditSessionHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	logger := sessionLogger(r, "UpdateForm")

	var values formstate.Values
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		logger.Warn("Failed to decode form values", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.formUC.Execute(r.Context(), chi.URLParam(r, "sessionID"), values)
	if err != nil {
		writeListingError(w, logger, opUpdate, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newEditSessionResponse(session))
}

// ApplyMediaEvent обрабатывает POST /api/v1/edit-sessions/{sessionID}/media
func (h *EditSessionHandler) ApplyMediaEvent(w http.ResponseWriter, r *http.Request) {
	logger := sessionLogger(r, "ApplyMediaEvent")

	var req MediaEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode media event", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	event, err := req.ToEvent()
	if err != nil {
		logger.Warn("Invalid media event", port.Fields{"error": err.Error(), "event_type": req.Type})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.mediaUC.Execute(r.Context(), chi.URLParam(r, "sessionID"), event)
	if err != nil {
		writeListingError(w, logger, opUpdate, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newEditSessionResponse(session))
}

// AttachUploads обрабатывает POST /api/v1/edit-sessions/{sessionID}/uploads.
// Файлы идут в поле "files", назначение - в "target" (images, videos, replace)
// и "replaceId" для замены.
func (h *EditSessionHandler) AttachUploads(w http.ResponseWriter, r *http.Request) {
	logger := sessionLogger(r, "AttachUploads")

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		logger.Warn("Failed to parse multipart form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	kind := usecases_port.UploadKind(r.FormValue("target"))
	if kind == "" {
		kind = usecases_port.UploadImages
	}
	target := usecases_port.UploadTarget{Kind: kind, ReplaceID: r.FormValue("replaceId")}

	headers := append(r.MultipartForm.File["files"], r.MultipartForm.File["files[]"]...)
	files, closeAll, err := openUploadFiles(headers)
	defer closeAll()
	if err != nil {
		logger.Error("Failed to open uploaded file", err, nil)
		WriteJSONError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	logger.Info("Attaching uploads", port.Fields{"target": string(target.Kind), "file_count": len(files)})

	session, err := h.uploadUC.Execute(r.Context(), chi.URLParam(r, "sessionID"), target, files)
	if err != nil {
		writeListingError(w, logger, opUpdate, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newEditSessionResponse(session))
}

func openUploadFiles(headers []*multipart.FileHeader) ([]usecases_port.UploadFile, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	files := make([]usecases_port.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, f)
		files = append(files, usecases_port.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		})
	}
	return files, closeAll, nil
}

// PreviewEditSession обрабатывает POST /api/v1/edit-sessions/{sessionID}/preview
func (h *EditSessionHandler) PreviewEditSession(w http.ResponseWriter, r *http.Request) {
	logger := sessionLogger(r, "PreviewEditSession")

	preview, err := h.previewUC.Execute(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeListingError(w, logger, opUpdate, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newPreviewResponse(preview))
}

// SubmitEditSession обрабатывает POST /api/v1/edit-sessions/{sessionID}/submit
func (h *EditSessionHandler) SubmitEditSession(w http.ResponseWriter, r *http.Request) {
	logger := sessionLogger(r, "SubmitEditSession")

	session, err := h.getUC.Execute(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeListingError(w, logger, opUpdate, err)
		return
	}
	op := opUpdate
	if session.ListingID == "" {
		op = opCreate
	}

	res, err := h.submitUC.Execute(r.Context(), session.ID)
	if err != nil {
		writeListingError(w, logger, op, err)
		return
	}

	logger.Info("Edit session submitted", port.Fields{"listing_id": res.ListingID, "kind": string(res.Kind)})
	RespondWithJSON(w, http.StatusOK, newSubmitResponse(res))
}

// CancelEditSession обрабатывает DELETE /api/v1/edit-sessions/{sessionID}
func (h *EditSessionHandler) CancelEditSession(w http.ResponseWriter, r *http.Request) {
	logger := sessionLogger(r, "CancelEditSession")

	if err := h.cancelUC.Execute(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeListingError(w, logger, opUpdate, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
