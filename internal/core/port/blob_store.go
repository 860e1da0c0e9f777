package port

import (
	"context"
	"io"

	"listing-admin-service/internal/core/media"
)

// BlobStorePort хранит загруженные в сессию файлы до отправки апстриму.
// Каждый Put должен быть парным Release.
type BlobStorePort interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (media.Upload, error)
	Open(ctx context.Context, blobID string) (io.ReadCloser, error)
	Release(ctx context.Context, blobIDs ...string) error
}
