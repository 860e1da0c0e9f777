package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port"
)

// releaseUploads освобождает файлы, на которые больше не ссылается сессия.
func releaseUploads(ctx context.Context, logger port.LoggerPort, blobs port.BlobStorePort, uploads []media.Upload) {
	if len(uploads) == 0 {
		return
	}
	ids := make([]string, 0, len(uploads))
	for _, u := range uploads {
		ids = append(ids, u.BlobID)
	}
	if err := blobs.Release(ctx, ids...); err != nil {
		logger.Error("Failed to release session uploads", err, port.Fields{"blob_ids": ids})
		return
	}
	logger.Debug("Released session uploads", port.Fields{"blob_ids": ids})
}

// loadSession загружает объявление в сессию. Если за время запроса к апстриму
// началась другая загрузка, результат отбрасывается с domain.ErrStaleResponse.
func loadSession(
	ctx context.Context,
	logger port.LoggerPort,
	store port.EditSessionStorePort,
	api port.ListingAPIPort,
	blobs port.BlobStorePort,
	sessionID, listingID string,
) (*editsession.Session, error) {
	var generation uint64
	if _, err := store.Update(ctx, sessionID, func(s *editsession.Session) error {
		generation = s.BeginLoad(time.Now())
		return nil
	}); err != nil {
		return nil, err
	}

	payload, err := api.GetListing(ctx, listingID)
	if err != nil {
		logger.Error("Failed to fetch listing for edit session", err, nil)
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}

	listing, err := decodeListing(logger, payload)
	if err != nil {
		return nil, err
	}

	var released []media.Upload
	session, err := store.Update(ctx, sessionID, func(s *editsession.Session) error {
		r, err := s.CompleteLoad(generation, *listing, time.Now())
		released = r
		return err
	})
	if errors.Is(err, domain.ErrStaleResponse) {
		logger.Warn("Discarding stale listing load", port.Fields{"generation": generation})
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	releaseUploads(ctx, logger, blobs, released)
	return session, nil
}
