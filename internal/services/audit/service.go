package audit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kmorten/usage_dashboard/backend/internal/store"
)

var ErrServiceUnavailable = errors.New("audit service not initialized")

// AnonymousSubject labels records for requests that never produced a verified
// identity.
const AnonymousSubject = "anonymous"

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Queries is the store surface the audit observer writes to and the dashboard
// reads from.
type Queries interface {
	InsertAuditEntry(ctx context.Context, entry store.AuditEntry) (store.AuditEntry, error)
	ListAuditEntries(ctx context.Context, limit, offset int32) ([]store.AuditEntry, error)
}

// Service records one entry per handled request and lists them for the
// operations dashboard. Recording is fire-and-forget from the caller's point
// of view; failures are the caller's to log, never to propagate.
type Service struct {
	queries Queries
}

func NewService(queries Queries) *Service {
	return &Service{queries: queries}
}

// Record describes one handled request.
type Record struct {
	SubjectID   string
	DisplayName string
	Method      string
	Path        string
	StatusCode  int
	Duration    time.Duration
	ClientHost  string
}

// Entry is an audit row shaped for the dashboard response.
type Entry struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	DisplayName string    `json:"display_name"`
	Method      string    `json:"method"`
	Path        string    `json:"path"`
	StatusCode  int       `json:"status_code"`
	DurationMS  int64     `json:"duration_ms"`
	ClientHost  string    `json:"client_host"`
	CreatedAt   time.Time `json:"created_at"`
}

// Write persists one request record. Empty subject fields are stored as
// "anonymous" so unauthenticated traffic still shows up.
func (s *Service) Write(ctx context.Context, rec Record) error {
	if s == nil || s.queries == nil {
		return ErrServiceUnavailable
	}
	subject := strings.TrimSpace(rec.SubjectID)
	if subject == "" {
		subject = AnonymousSubject
	}
	name := strings.TrimSpace(rec.DisplayName)
	if name == "" {
		name = AnonymousSubject
	}
	_, err := s.queries.InsertAuditEntry(ctx, store.AuditEntry{
		SubjectID:   subject,
		DisplayName: name,
		Method:      rec.Method,
		Path:        rec.Path,
		StatusCode:  int32(rec.StatusCode),
		DurationMS:  rec.Duration.Milliseconds(),
		ClientHost:  rec.ClientHost,
	})
	return err
}

// List returns recent entries, newest first. Limit is clamped to a sane
// window; offset below zero reads from the top.
func (s *Service) List(ctx context.Context, limit, offset int32) ([]Entry, error) {
	if s == nil || s.queries == nil {
		return nil, ErrServiceUnavailable
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.queries.ListAuditEntries(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ID:          row.ID.String(),
			SubjectID:   row.SubjectID,
			DisplayName: row.DisplayName,
			Method:      row.Method,
			Path:        row.Path,
			StatusCode:  int(row.StatusCode),
			DurationMS:  row.DurationMS,
			ClientHost:  row.ClientHost,
			CreatedAt:   row.CreatedAt,
		})
	}
	return entries, nil
}
