package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port"
	"listing-admin-service/internal/core/port/usecases_port"
)

type AttachUploadsUseCase struct {
	store port.EditSessionStorePort
	blobs port.BlobStorePort
}

func NewAttachUploadsUseCase(store port.EditSessionStorePort, blobs port.BlobStorePort) *AttachUploadsUseCase {
	return &AttachUploadsUseCase{store: store, blobs: blobs}
}

// Execute сохраняет файлы и добавляет их в медиа сессии.
// Если событие применить не удалось, сохраненные файлы сразу освобождаются.
func (uc *AttachUploadsUseCase) Execute(ctx context.Context, sessionID string, target usecases_port.UploadTarget, files []usecases_port.UploadFile) (*editsession.Session, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "AttachUploads",
		"session_id": sessionID,
		"target":     string(target.Kind),
	})
	logger.Info("Use case started", port.Fields{"files": len(files)})

	if err := checkUploadTarget(target, files); err != nil {
		logger.Warn("Rejected uploads", port.Fields{"error": err.Error()})
		return nil, err
	}

	uploads := make([]media.Upload, 0, len(files))
	for _, f := range files {
		up, err := uc.blobs.Put(ctx, f.Name, f.ContentType, f.Content)
		if err != nil {
			logger.Error("Failed to store upload", err, port.Fields{"name": f.Name})
			releaseUploads(ctx, logger, uc.blobs, uploads)
			return nil, fmt.Errorf("failed to store upload %q: %w", f.Name, err)
		}
		uploads = append(uploads, up)
	}

	var event media.Event
	switch target.Kind {
	case usecases_port.UploadImages:
		event = media.AddNew{Uploads: uploads}
	case usecases_port.UploadVideos:
		event = media.AddNewVideos{Uploads: uploads}
	case usecases_port.UploadReplace:
		event = media.ReplaceExisting{ID: target.ReplaceID, Upload: uploads[0]}
	}

	var released []media.Upload
	session, err := uc.store.Update(ctx, sessionID, func(s *editsession.Session) error {
		r, err := s.ApplyMedia(event, time.Now())
		released = r
		return err
	})
	if err != nil {
		logger.Warn("Failed to attach uploads to session", port.Fields{"error": err.Error()})
		releaseUploads(ctx, logger, uc.blobs, uploads)
		return nil, err
	}

	// Замена несуществующего изображения ничего не меняет, такой файл сразу освобождается.
	unused := media.ReleasedUploads(media.State{Videos: media.Videos{New: uploads}}, session.Media)
	releaseUploads(ctx, logger, uc.blobs, append(released, unused...))

	logger.Info("Use case finished successfully", nil)
	return session, nil
}

func checkUploadTarget(target usecases_port.UploadTarget, files []usecases_port.UploadFile) error {
	if len(files) == 0 {
		return formError("/files", "at least one file is required")
	}

	prefix := "image/"
	switch target.Kind {
	case usecases_port.UploadImages:
	case usecases_port.UploadVideos:
		prefix = "video/"
	case usecases_port.UploadReplace:
		if target.ReplaceID == "" {
			return formError("/replaceId", "image id is required")
		}
		if len(files) != 1 {
			return formError("/files", "exactly one file is required for replacement")
		}
	default:
		return formError("/target", fmt.Sprintf("unknown upload target %q", target.Kind))
	}

	for i, f := range files {
		if !strings.HasPrefix(strings.ToLower(f.ContentType), prefix) {
			return formError(fmt.Sprintf("/files/%d", i), fmt.Sprintf("expected %s* content type, got %q", prefix, f.ContentType))
		}
	}
	return nil
}

func formError(path, message string) error {
	return domain.NewValidationError(domain.SourceForm, []domain.ValidationIssue{{Path: path, Message: message}})
}
