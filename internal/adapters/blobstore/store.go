// Package blobstore хранит загруженные в сессии файлы на локальном диске
// до их отправки апстриму.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port"
)

// ErrTooLarge - файл больше допустимого размера.
var ErrTooLarge = domain.ErrUploadTooLarge

// FileStore - BlobStorePort поверх каталога. Каждый файл лежит под своим BlobID.
type FileStore struct {
	dir     string
	maxSize int64

	mu    sync.Mutex
	blobs map[string]media.Upload
}

// NewFileStore создает каталог dir. Пустой dir - временный каталог в os.TempDir.
// maxSize <= 0 снимает ограничение размера.
func NewFileStore(dir string, maxSize int64) (*FileStore, error) {
	if dir == "" {
		tmp, err := os.MkdirTemp("", "listing-admin-blobs-")
		if err != nil {
			return nil, fmt.Errorf("failed to create blob dir: %w", err)
		}
		dir = tmp
	} else if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, maxSize: maxSize, blobs: make(map[string]media.Upload)}, nil
}

func (s *FileStore) path(blobID string) string {
	return filepath.Join(s.dir, blobID)
}

func (s *FileStore) Put(ctx context.Context, name, contentType string, r io.Reader) (media.Upload, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "FileStore", "name": name})

	id := uuid.New().String()
	f, err := os.OpenFile(s.path(id), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return media.Upload{}, fmt.Errorf("failed to create blob: %w", err)
	}

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	size, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		err = fmt.Errorf("failed to write blob: %w", copyErr)
	case closeErr != nil:
		err = fmt.Errorf("failed to write blob: %w", closeErr)
	case s.maxSize > 0 && size > s.maxSize:
		err = fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, name, s.maxSize)
	}
	if err != nil {
		_ = os.Remove(s.path(id))
		logger.Warn("Upload rejected", port.Fields{"error": err.Error()})
		return media.Upload{}, err
	}

	up := media.Upload{BlobID: id, Name: name, ContentType: contentType, Size: size}
	s.mu.Lock()
	s.blobs[id] = up
	s.mu.Unlock()

	logger.Debug("Blob stored", port.Fields{"blob_id": id, "size": size})
	return up, nil
}

func (s *FileStore) Open(ctx context.Context, blobID string) (io.ReadCloser, error) {
	s.mu.Lock()
	_, ok := s.blobs[blobID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBlobNotFound, blobID)
	}

	f, err := os.Open(s.path(blobID))
	if err != nil {
		return nil, fmt.Errorf("failed to open blob %s: %w", blobID, err)
	}
	return f, nil
}

// Release удаляет файлы. Неизвестные идентификаторы пропускаются,
// поэтому повторный Release безопасен.
func (s *FileStore) Release(ctx context.Context, blobIDs ...string) error {
	var errs []error
	for _, id := range blobIDs {
		s.mu.Lock()
		_, ok := s.blobs[id]
		delete(s.blobs, id)
		s.mu.Unlock()
		if !ok {
			continue
		}
		if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove blob %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// Len - количество неосвобожденных файлов.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// Close освобождает все оставшиеся файлы.
func (s *FileStore) Close() error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.blobs))
	for id := range s.blobs {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	return s.Release(context.Background(), ids...)
}
