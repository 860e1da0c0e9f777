package usecases_port

import (
	"context"
	"io"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/formstate"
	"listing-admin-service/internal/core/media"
)

// OpenEditSessionUseCasePort открывает сессию. Пустой listingID - сессия создания.
type OpenEditSessionUseCasePort interface {
	Execute(ctx context.Context, listingID string) (*editsession.Session, error)
}

type ReloadEditSessionUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (*editsession.Session, error)
}

type GetEditSessionUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (*editsession.Session, error)
}

type UpdateEditFormUseCasePort interface {
	Execute(ctx context.Context, sessionID string, values formstate.Values) (*editsession.Session, error)
}

type ApplyMediaEventUseCasePort interface {
	Execute(ctx context.Context, sessionID string, event media.Event) (*editsession.Session, error)
}

// UploadTarget - куда относятся загружаемые файлы.
type UploadTarget struct {
	Kind      UploadKind
	ReplaceID string // для UploadReplace
}

type UploadKind string

const (
	UploadImages  UploadKind = "images"
	UploadVideos  UploadKind = "videos"
	UploadReplace UploadKind = "replace"
)

// UploadFile - один файл из multipart-запроса.
type UploadFile struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type AttachUploadsUseCasePort interface {
	Execute(ctx context.Context, sessionID string, target UploadTarget, files []UploadFile) (*editsession.Session, error)
}

type PreviewEditSessionUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (*editsession.Preview, error)
}

// SubmitResult - итог сохранения. Listing nil, если ответ апстрима не прошел проверку.
type SubmitResult struct {
	ListingID string
	Listing   *domain.Listing
	Patch     map[string]any
	Kind      domain.ChangeKind
}

type SubmitEditSessionUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (*SubmitResult, error)
}

type CancelEditSessionUseCasePort interface {
	Execute(ctx context.Context, sessionID string) error
}
