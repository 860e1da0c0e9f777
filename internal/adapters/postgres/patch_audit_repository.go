package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

// DB - часть pgxpool.Pool, которой пользуется репозиторий.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const createPatchAuditTable = `
CREATE TABLE IF NOT EXISTS listing_patch_audit (
	id          UUID PRIMARY KEY,
	listing_id  TEXT        NOT NULL,
	session_id  TEXT,
	kind        TEXT        NOT NULL,
	patch       JSONB       NOT NULL DEFAULT '{}'::jsonb,
	baseline    JSONB,
	media       JSONB,
	trace_id    TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS listing_patch_audit_listing_created_idx
	ON listing_patch_audit (listing_id, created_at DESC);
`

// PostgresPatchAuditRepository - журнал отправленных патчей в PostgreSQL.
type PostgresPatchAuditRepository struct {
	db DB
}

func NewPostgresPatchAuditRepository(db DB) (*PostgresPatchAuditRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("postgres db cannot be nil")
	}
	return &PostgresPatchAuditRepository{db: db}, nil
}

// EnsureSchema создает таблицу журнала, если ее еще нет.
func (r *PostgresPatchAuditRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createPatchAuditTable); err != nil {
		return fmt.Errorf("failed to create patch audit table: %w", err)
	}
	return nil
}

func (r *PostgresPatchAuditRepository) Save(ctx context.Context, entry domain.PatchAuditEntry) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresPatchAuditRepository",
		"method":     "Save",
		"listing_id": entry.ListingID,
		"entry_id":   entry.ID,
	})

	query := `INSERT INTO listing_patch_audit
		(id, listing_id, session_id, kind, patch, baseline, media, trace_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	patch := entry.Patch
	if patch == nil {
		patch = map[string]any{}
	}

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.ListingID,
		nullable(entry.SessionID),
		string(entry.Kind),
		patch,
		jsonOrNil(entry.Baseline),
		jsonOrNil(entry.Media),
		nullable(entry.TraceID),
		entry.CreatedAt,
	)
	if err != nil {
		logger.Error("Failed to insert patch audit entry", err, nil)
		return fmt.Errorf("failed to save patch audit entry: %w", err)
	}

	logger.Debug("Patch audit entry saved", nil)
	return nil
}

func (r *PostgresPatchAuditRepository) ListByListing(ctx context.Context, listingID string, limit int) ([]domain.PatchAuditEntry, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresPatchAuditRepository",
		"method":     "ListByListing",
		"listing_id": listingID,
	})

	query := `SELECT id::text, listing_id, session_id, kind, patch, baseline, media, trace_id, created_at
		FROM listing_patch_audit
		WHERE listing_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, listingID, limit)
	if err != nil {
		logger.Error("Failed to query patch audit entries", err, nil)
		return nil, fmt.Errorf("failed to query patch audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.PatchAuditEntry, 0)
	for rows.Next() {
		var (
			e                  domain.PatchAuditEntry
			kind               string
			sessionID, traceID *string
		)
		if err := rows.Scan(&e.ID, &e.ListingID, &sessionID, &kind, &e.Patch, &e.Baseline, &e.Media, &traceID, &e.CreatedAt); err != nil {
			logger.Error("Failed to scan patch audit row", err, nil)
			return nil, fmt.Errorf("failed to scan patch audit entry: %w", err)
		}
		e.Kind = domain.ChangeKind(kind)
		e.SessionID = deref(sessionID)
		e.TraceID = deref(traceID)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error during patch audit iteration", err, nil)
		return nil, fmt.Errorf("error during patch audit iteration: %w", err)
	}

	return entries, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// jsonOrNil пишет NULL вместо пустого объекта.
func jsonOrNil(m map[string]any) any {
	if len(m) == 0 {
		return nil
	}
	return m
}
