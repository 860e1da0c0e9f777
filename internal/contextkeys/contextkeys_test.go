package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

func TestLoggerFromContextFallsBackToNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.WithFields(port.Fields{"a": 1}).Error("msg", nil, nil)
	})
}

func TestTraceIDRoundTrip(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
	ctx := ContextWithTraceID(context.Background(), "trace-1")
	assert.Equal(t, "trace-1", TraceIDFromContext(ctx))
}

func TestSessionProvider(t *testing.T) {
	var p SessionProvider
	s := p.Session(context.Background())
	assert.False(t, s.Authenticated())

	ctx := ContextWithSession(context.Background(), domain.Session{AccessToken: "tok"})
	assert.Equal(t, "tok", p.Session(ctx).AccessToken)
}
