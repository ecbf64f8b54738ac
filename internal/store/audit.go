package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// AuditEntry mirrors a row of the audit_log table.
type AuditEntry struct {
	ID          uuid.UUID
	SubjectID   string
	DisplayName string
	Method      string
	Path        string
	StatusCode  int32
	DurationMS  int64
	ClientHost  string
	CreatedAt   time.Time
}

const insertAuditEntrySQL = `
INSERT INTO audit_log (subject_id, display_name, method, path, status_code, duration_ms, client_host)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`

// InsertAuditEntry persists one request record and fills in the generated
// id and timestamp.
func (s *Store) InsertAuditEntry(ctx context.Context, entry AuditEntry) (AuditEntry, error) {
	var (
		id      pgtype.UUID
		created pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, insertAuditEntrySQL,
		entry.SubjectID, entry.DisplayName, entry.Method, entry.Path,
		entry.StatusCode, entry.DurationMS, entry.ClientHost,
	).Scan(&id, &created)
	if err != nil {
		return AuditEntry{}, fmt.Errorf("insert audit entry: %w", err)
	}
	entry.ID, err = uuidFromPg(id)
	if err != nil {
		return AuditEntry{}, err
	}
	if created.Valid {
		entry.CreatedAt = created.Time
	}
	return entry, nil
}

const listAuditEntriesSQL = `
SELECT id, subject_id, display_name, method, path, status_code, duration_ms, client_host, created_at
FROM audit_log
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`

// ListAuditEntries returns the most recent request records, newest first.
func (s *Store) ListAuditEntries(ctx context.Context, limit, offset int32) ([]AuditEntry, error) {
	rows, err := s.pool.Query(ctx, listAuditEntriesSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			entry   AuditEntry
			id      pgtype.UUID
			created pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &entry.SubjectID, &entry.DisplayName, &entry.Method, &entry.Path,
			&entry.StatusCode, &entry.DurationMS, &entry.ClientHost, &created); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.ID, err = uuidFromPg(id)
		if err != nil {
			return nil, err
		}
		if created.Valid {
			entry.CreatedAt = created.Time
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
