package contextkeys

import (
	"context"

	"listing-admin-service/internal/core/domain"
)

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// ContextWithSession помещает сессию администратора в контекст
func ContextWithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext возвращает сессию из контекста или пустую сессию
func SessionFromContext(ctx context.Context) domain.Session {
	if s, ok := ctx.Value(sessionKey).(domain.Session); ok {
		return s
	}
	return domain.Session{}
}

// SessionProvider реализует port.SessionPort поверх контекста запроса.
type SessionProvider struct{}

func (SessionProvider) Session(ctx context.Context) domain.Session {
	return SessionFromContext(ctx)
}
