package port

import (
	"context"

	"listing-admin-service/internal/core/domain"
)

// SessionPort отдает сессию администратора, от имени которого идет запрос.
type SessionPort interface {
	Session(ctx context.Context) domain.Session
}
