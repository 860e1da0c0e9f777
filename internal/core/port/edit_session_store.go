package port

import (
	"context"

	"listing-admin-service/internal/core/editsession"
)

// EditSessionStorePort хранит открытые сессии редактирования.
type EditSessionStorePort interface {
	Create(ctx context.Context, s *editsession.Session) error
	// Get возвращает копию сессии или domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*editsession.Session, error)
	// Update вызывает fn под блокировкой сессии и сохраняет результат, если fn не вернула ошибку.
	Update(ctx context.Context, id string, fn func(s *editsession.Session) error) (*editsession.Session, error)
	// Delete удаляет сессию и возвращает ее последнее состояние.
	Delete(ctx context.Context, id string) (*editsession.Session, error)
}
