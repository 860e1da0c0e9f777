package rest

import (
	"fmt"
	"strings"
	"time"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/formstate"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port/usecases_port"
)

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error  string                   `json:"error"`
	Issues []domain.ValidationIssue `json:"issues,omitempty"`
}

// Типы медиа-событий, которые дашборд отправляет JSON-ом.
// Добавление файлов идет только через /uploads.
const (
	eventSetExistingAlt      = "setExistingAlt"
	eventSetNewAlt           = "setNewAlt"
	eventSetPrimaryExisting  = "setPrimaryExisting"
	eventSetPrimaryNew       = "setPrimaryNew"
	eventRemoveExisting      = "removeExisting"
	eventRemoveNew           = "removeNew"
	eventRemoveExistingVideo = "removeExistingVideo"
	eventAddExternalVideo    = "addExternalVideo"
	eventRemoveExternalVideo = "removeExternalVideo"
	eventRemoveNewVideo      = "removeNewVideo"
)

// MediaEventRequest - тело POST /edit-sessions/{id}/media.
type MediaEventRequest struct {
	Type  string  `json:"type"`
	ID    string  `json:"id,omitempty"`
	Index *int    `json:"index,omitempty"`
	Alt   *string `json:"alt,omitempty"`
	URL   string  `json:"url,omitempty"`
}

// ToEvent превращает запрос в событие редьюсера медиа.
func (r MediaEventRequest) ToEvent() (media.Event, error) {
	needID := func() error {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("event %q requires id", r.Type)
		}
		return nil
	}
	needIndex := func() error {
		if r.Index == nil || *r.Index < 0 {
			return fmt.Errorf("event %q requires a non-negative index", r.Type)
		}
		return nil
	}
	needURL := func() error {
		if strings.TrimSpace(r.URL) == "" {
			return fmt.Errorf("event %q requires url", r.Type)
		}
		return nil
	}
	alt := ""
	if r.Alt != nil {
		alt = *r.Alt
	}

	switch r.Type {
	case eventSetExistingAlt:
		if err := needID(); err != nil {
			return nil, err
		}
		return media.SetExistingAlt{ID: r.ID, Alt: alt}, nil
	case eventSetNewAlt:
		if err := needIndex(); err != nil {
			return nil, err
		}
		return media.SetNewAlt{Index: *r.Index, Alt: alt}, nil
	case eventSetPrimaryExisting:
		if err := needID(); err != nil {
			return nil, err
		}
		return media.SetPrimaryExisting{ID: r.ID}, nil
	case eventSetPrimaryNew:
		if err := needIndex(); err != nil {
			return nil, err
		}
		return media.SetPrimaryNew{Index: *r.Index}, nil
	case eventRemoveExisting:
		if err := needID(); err != nil {
			return nil, err
		}
		return media.RemoveExisting{ID: r.ID}, nil
	case eventRemoveNew:
		if err := needIndex(); err != nil {
			return nil, err
		}
		return media.RemoveNew{Index: *r.Index}, nil
	case eventRemoveExistingVideo:
		if err := needURL(); err != nil {
			return nil, err
		}
		return media.RemoveExistingVideo{URL: r.URL}, nil
	case eventAddExternalVideo:
		if err := needURL(); err != nil {
			return nil, err
		}
		return media.AddExternalVideo{URL: r.URL}, nil
	case eventRemoveExternalVideo:
		if err := needURL(); err != nil {
			return nil, err
		}
		return media.RemoveExternalVideo{URL: r.URL}, nil
	case eventRemoveNewVideo:
		if err := needIndex(); err != nil {
			return nil, err
		}
		return media.RemoveNewVideo{Index: *r.Index}, nil
	default:
		return nil, fmt.Errorf("unknown media event type %q", r.Type)
	}
}

// EditSessionResponse - состояние сессии редактирования для дашборда.
type EditSessionResponse struct {
	ID         string           `json:"id"`
	ListingID  string           `json:"listingId,omitempty"`
	Mode       editsession.Mode `json:"mode"`
	Loaded     bool             `json:"loaded"`
	Generation uint64           `json:"generation"`
	Listing    *domain.Listing  `json:"listing"`
	Values     formstate.Values `json:"values"`
	Media      media.State      `json:"media"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func newEditSessionResponse(s *editsession.Session) EditSessionResponse {
	return EditSessionResponse{
		ID:         s.ID,
		ListingID:  s.ListingID,
		Mode:       s.Mode,
		Loaded:     s.Loaded,
		Generation: s.Generation,
		Listing:    s.Listing,
		Values:     s.Values,
		Media:      s.Media,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// PreviewResponse - то, что уйдет апстриму при сохранении.
type PreviewResponse struct {
	Snapshot   map[string]any `json:"snapshot"`
	Patch      map[string]any `json:"patch"`
	Media      media.Payload  `json:"media"`
	HasChanges bool           `json:"hasChanges"`
}

func newPreviewResponse(p *editsession.Preview) PreviewResponse {
	return PreviewResponse{
		Snapshot:   p.Snapshot,
		Patch:      p.Patch,
		Media:      p.Media,
		HasChanges: p.HasChanges(),
	}
}

// SubmitResponse - итог сохранения. Listing null, если ответ апстрима не прошел проверку.
type SubmitResponse struct {
	ListingID string            `json:"listingId"`
	Kind      domain.ChangeKind `json:"kind"`
	Patch     map[string]any    `json:"patch"`
	Listing   *domain.Listing   `json:"listing"`
}

func newSubmitResponse(res *usecases_port.SubmitResult) SubmitResponse {
	return SubmitResponse{
		ListingID: res.ListingID,
		Kind:      res.Kind,
		Patch:     res.Patch,
		Listing:   res.Listing,
	}
}

// CreateListingResponse - ответ на создание объявления без сессии.
type CreateListingResponse struct {
	Listing *domain.Listing `json:"listing"`
}

// InterestRequestBody - тело POST /listings/{id}/interests.
type InterestRequestBody struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Message *string `json:"message"`
}

// PatchHistoryResponse - журнал патчей объявления, новые первыми.
type PatchHistoryResponse struct {
	Items []domain.PatchAuditEntry `json:"items"`
}

// SimilarListingsResponse - похожие объявления.
type SimilarListingsResponse struct {
	Items []domain.Listing `json:"items"`
}
